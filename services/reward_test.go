package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyActiveDiscountsNeverStacks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	unlocked, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.LevelTrigger(10))
	require.NoError(t, err)
	ids := make([]string, 0, len(unlocked))
	for _, r := range unlocked {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "pro-discount-20")
	assert.Contains(t, ids, "early-adopter-discount")

	quote, err := env.rewards.ApplyActiveDiscounts(env.ctx, "u1", shared.PlanPro, 10000)
	require.NoError(t, err)
	assert.Equal(t, 20, quote.Percent)
	assert.Equal(t, "pro-discount-20", quote.RewardID)
	assert.Equal(t, int64(8000), quote.FinalCents)

	quote, err = env.rewards.ApplyActiveDiscounts(env.ctx, "u1", shared.PlanTeam, 10000)
	require.NoError(t, err)
	assert.Equal(t, 15, quote.Percent)
	assert.Equal(t, int64(8500), quote.FinalCents)
}

func TestApplyActiveDiscountsWithoutDiscount(t *testing.T) {
	env := newTestEnv(t)

	quote, err := env.rewards.ApplyActiveDiscounts(env.ctx, "nobody", shared.PlanPro, 999)
	require.NoError(t, err)
	assert.Zero(t, quote.Percent)
	assert.Equal(t, int64(999), quote.FinalCents)
}

func TestCheckAndUnlockRewardsIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	first, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.LevelTrigger(2))
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	again, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.LevelTrigger(2))
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Equal(t, len(first), env.notificationCount(t, "u1", shared.NotificationReward))
}

func TestClaimRewardErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.rewards.ClaimReward(env.ctx, "u1", "no-such-reward")
	requireStatus(t, err, http.StatusNotFound)

	_, err = env.rewards.ClaimReward(env.ctx, "u1", "priority-feedback")
	requireStatus(t, err, http.StatusForbidden)
}

func TestClaimRewardActivatesOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.LevelTrigger(8))
	require.NoError(t, err)

	perks, err := env.db.Rewards().ListActivePerks("u1")
	require.NoError(t, err)
	assert.Empty(t, perks)

	claimed, err := env.rewards.ClaimReward(env.ctx, "u1", "priority-feedback")
	require.NoError(t, err)
	require.NotNil(t, claimed.ClaimedAt)
	assert.True(t, claimed.Active)
	firstClaim := *claimed.ClaimedAt

	env.clock.Advance(time.Hour)
	claimed, err = env.rewards.ClaimReward(env.ctx, "u1", "priority-feedback")
	require.NoError(t, err)
	require.NotNil(t, claimed.ClaimedAt)
	assert.True(t, firstClaim.Equal(*claimed.ClaimedAt))

	perks, err = env.db.Rewards().ListActivePerks("u1")
	require.NoError(t, err)
	require.Len(t, perks, 1)
	assert.Equal(t, "priority_feedback", perks[0].Perk)
}

func TestExpirePerks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.LevelTrigger(8))
	require.NoError(t, err)
	_, err = env.rewards.ClaimReward(env.ctx, "u1", "priority-feedback")
	require.NoError(t, err)

	n, err := env.rewards.ExpirePerks(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	env.clock.Advance(32 * 24 * time.Hour)
	n, err = env.rewards.ExpirePerks(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListRewardsShowsUnlockState(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.SpecialTrigger(catalog.SpecialEarlyAdopter))
	require.NoError(t, err)

	list, err := env.rewards.ListRewards(env.ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, list, len(catalog.Rewards()))
	for _, r := range list {
		if r.ID == "early-adopter-discount" {
			assert.True(t, r.Unlocked)
			assert.True(t, r.Active)
			continue
		}
		assert.False(t, r.Unlocked, r.ID)
	}
}

func TestHasContentAccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	const guides = "guides/exclusive-creator"

	access, err := env.rewards.HasContentAccess(env.ctx, "u1", guides)
	require.NoError(t, err)
	assert.False(t, access.Granted)

	_, err = env.rewards.CheckAndUnlockRewards(env.ctx, "u1", catalog.XPTrigger(10000))
	require.NoError(t, err)

	access, err = env.rewards.HasContentAccess(env.ctx, "u1", guides)
	require.NoError(t, err)
	assert.True(t, access.Granted)
	assert.Equal(t, guides, access.ContentID)

	access, err = env.rewards.HasContentAccess(env.ctx, "u2", guides)
	require.NoError(t, err)
	assert.False(t, access.Granted)

	_, err = env.rewards.HasContentAccess(env.ctx, "u1", "")
	requireStatus(t, err, http.StatusBadRequest)
}
