package services

import (
	"net/http"
	"testing"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserEarlyAdopter(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.users.CreateUser(env.ctx, dto.CreateUserRequest{ID: "u1", DisplayName: "  Ava  "})
	require.NoError(t, err)
	assert.Equal(t, "Ava", profile.DisplayName)
	assert.Equal(t, int64(1), profile.SignupOrder)
	assert.Nil(t, profile.OnboardedAt)
	assert.Equal(t, int64(150), profile.Level.CurrentXP)
	assert.Equal(t, int64(1), profile.Badges)

	earned, err := env.db.Badges().EarnedBadgeIDs("u1")
	require.NoError(t, err)
	assert.True(t, earned[catalog.BadgeEarlyAdopter])

	quote, err := env.rewards.ApplyActiveDiscounts(env.ctx, "u1", shared.PlanPro, 2000)
	require.NoError(t, err)
	assert.Equal(t, 15, quote.Percent)
	assert.Equal(t, int64(1700), quote.FinalCents)
}

func TestCreateUserConflict(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateUser(env.ctx, dto.CreateUserRequest{ID: "u1", DisplayName: "Ava"})
	require.NoError(t, err)

	_, err = env.users.CreateUser(env.ctx, dto.CreateUserRequest{ID: "u1", DisplayName: "Ava again"})
	requireStatus(t, err, http.StatusConflict)

	second, err := env.users.CreateUser(env.ctx, dto.CreateUserRequest{ID: "u2", DisplayName: "Ben"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.SignupOrder)
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetProfile(env.ctx, "ghost")
	requireStatus(t, err, http.StatusNotFound)
}

func fullProfile() dto.OnboardingProfile {
	return dto.OnboardingProfile{
		CreatorLevel: "beginner",
		Platforms:    []string{"twitch"},
		ContentNiche: "gaming",
		Equipment:    "phone and a ring light",
		Goals:        "reach 1k followers",
		Challenges:   "finding time to edit",
	}
}

func TestSaveOnboardingProfilePaysOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	require.NoError(t, env.users.SaveOnboardingProfile(env.ctx, "u1", fullProfile()))

	profile, err := env.users.GetProfile(env.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.OnboardedAt)
	require.NotNil(t, profile.Profile)
	assert.Equal(t, "gaming", profile.Profile.ContentNiche)
	assert.Equal(t, []string{"twitch"}, profile.Profile.Platforms)
	assert.Contains(t, profile.Features, "beta_lab")
	assert.GreaterOrEqual(t, profile.Badges, int64(1))
	assert.GreaterOrEqual(t, profile.Achievements, int64(1))

	earned, err := env.db.Badges().EarnedBadgeIDs("u1")
	require.NoError(t, err)
	assert.True(t, earned["ready-to-create"])

	achievements, err := env.db.Badges().EarnedAchievementIDs("u1")
	require.NoError(t, err)
	assert.True(t, achievements["profile-perfectionist"])

	update := fullProfile()
	update.Goals = "reach 10k followers"
	require.NoError(t, env.users.SaveOnboardingProfile(env.ctx, "u1", update))

	history, err := env.xp.GetHistory(env.ctx, "u1", 100)
	require.NoError(t, err)
	paid := 0
	for _, tx := range history {
		if tx.ActionID == catalog.ActionCompleteOnboarding {
			paid++
		}
	}
	assert.Equal(t, 1, paid)

	profile, err = env.users.GetProfile(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "reach 10k followers", profile.Profile.Goals)
}
