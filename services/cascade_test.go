package services

import (
	"testing"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeFollowsAwardChain(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	ok, err := env.badges.AwardBadge(env.ctx, "u1", catalog.BadgeContentCreator)
	require.NoError(t, err)
	require.True(t, ok)

	// Badge XP crosses level 2, which pays the level-up bonus.
	assert.Equal(t, int64(300), env.totalXP(t, "u1"))
	assert.Equal(t, 1, env.notificationCount(t, "u1", shared.NotificationLevelUp))

	unlocked, err := env.db.Rewards().UnlockedRewardIDs("u1")
	require.NoError(t, err)
	assert.True(t, unlocked["golden-frame"])
}

func TestCascadeDropsJobsPastMaxDepth(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.cascade.maxDepth = 1

	ok, err := env.badges.AwardBadge(env.ctx, "u1", catalog.BadgeContentCreator)
	require.NoError(t, err)
	require.True(t, ok)

	// The XP grant runs at depth one; the level-up it queues is dropped.
	assert.Equal(t, int64(250), env.totalXP(t, "u1"))
	assert.Zero(t, env.notificationCount(t, "u1", shared.NotificationLevelUp))

	unlocked, err := env.db.Rewards().UnlockedRewardIDs("u1")
	require.NoError(t, err)
	assert.True(t, unlocked["golden-frame"])
}

func TestCascadeZeroDepthRunsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.cascade.maxDepth = 0

	ok, err := env.badges.AwardBadge(env.ctx, "u1", catalog.BadgeFirstSteps)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Zero(t, env.totalXP(t, "u1"))
	earned, err := env.db.Badges().EarnedBadgeIDs("u1")
	require.NoError(t, err)
	assert.True(t, earned[catalog.BadgeFirstSteps])
}

func TestCascadeSubmitWithoutJobs(t *testing.T) {
	env := newTestEnv(t)
	assert.NotPanics(t, func() { env.cascade.Submit(env.ctx) })
}
