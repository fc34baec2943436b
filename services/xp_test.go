package services

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardXPCatalogAmount(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionPublishContent, nil)
	require.NoError(t, err)
	require.NotNil(t, gain)
	assert.Equal(t, 100, gain.XPAmount)
	assert.Zero(t, gain.BonusXP)

	level, err := env.xp.GetUserLevel(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), level.CurrentXP)
	assert.Equal(t, int64(100), level.MonthlyXP)
	assert.Equal(t, 1, level.Level)
	assert.Equal(t, int64(250), level.NextLevelXP)
}

func TestAwardXPUnknownActionIsSkipped(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	gain, err := env.xp.AwardXP(env.ctx, "u1", "juggle", nil)
	require.NoError(t, err)
	assert.Nil(t, gain)
	assert.Zero(t, env.totalXP(t, "u1"))
}

func TestAwardXPDailyLimit(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionDailyLogin, nil)
	require.NoError(t, err)
	require.NotNil(t, gain)

	gain, err = env.xp.AwardXP(env.ctx, "u1", catalog.ActionDailyLogin, nil)
	require.NoError(t, err)
	assert.Nil(t, gain)

	env.clock.Advance(24 * time.Hour)
	gain, err = env.xp.AwardXP(env.ctx, "u1", catalog.ActionDailyLogin, nil)
	require.NoError(t, err)
	assert.NotNil(t, gain)
	assert.Equal(t, int64(20), env.totalXP(t, "u1"))
}

func TestAwardXPCooldown(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionAIChat, nil)
	require.NoError(t, err)
	require.NotNil(t, gain)

	env.clock.Advance(30 * time.Second)
	gain, err = env.xp.AwardXP(env.ctx, "u1", catalog.ActionAIChat, nil)
	require.NoError(t, err)
	assert.Nil(t, gain)

	env.clock.Advance(time.Minute)
	gain, err = env.xp.AwardXP(env.ctx, "u1", catalog.ActionAIChat, nil)
	require.NoError(t, err)
	assert.NotNil(t, gain)
}

func TestAwardXPStreakAndWeekendBonus(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	env.clock.At = time.Date(2026, time.October, 17, 13, 0, 0, 0, time.UTC)
	_, err := env.db.Users().GetStats("u1", env.clock.Now())
	require.NoError(t, err)
	require.NoError(t, env.db.Users().SaveStreak("u1", 7, 7, shared.DayKey(env.clock.Now()), env.clock.Now()))

	gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionPublishContent, nil)
	require.NoError(t, err)
	require.NotNil(t, gain)
	assert.Equal(t, 30, gain.BonusXP)
	assert.Equal(t, 130, gain.XPAmount)
	assert.Contains(t, gain.Reason, "weekend")
	assert.Contains(t, gain.Reason, "7-day streak")
}

func TestAwardXPFocusBonus(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	for i := 0; i < 5; i++ {
		gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionCompleteTask, nil)
		require.NoError(t, err)
		require.NotNil(t, gain)
		assert.Zero(t, gain.BonusXP)
		env.clock.Advance(time.Minute)
	}

	gain, err := env.xp.AwardXP(env.ctx, "u1", catalog.ActionCompleteTask, nil)
	require.NoError(t, err)
	require.NotNil(t, gain)
	assert.Equal(t, 3, gain.BonusXP)
	assert.Equal(t, 23, gain.XPAmount)
}

func TestBonusPercent(t *testing.T) {
	wednesday := testNow
	saturdayMorning := time.Date(2026, time.October, 17, 7, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		streak int
		focus  int64
		at     time.Time
		want   int
	}{
		{"none", 0, 0, wednesday, 0},
		{"short streak", 3, 0, wednesday, 5},
		{"two weeks", 14, 0, wednesday, 20},
		{"month", 45, 0, wednesday, 30},
		{"focus", 0, 5, wednesday, 15},
		{"evening", 0, 0, time.Date(2026, time.October, 14, 22, 0, 0, 0, time.UTC), 10},
		{"everything", 14, 6, saturdayMorning, 65},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := bonusPercent(tc.streak, tc.focus, tc.at)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLevelUpFiresOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 260, catalog.CategoryAchievement)
	require.NoError(t, err)

	level, err := env.xp.GetUserLevel(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, level.Level)
	// 260 plus the level-up bonus.
	assert.Equal(t, int64(310), level.CurrentXP)
	assert.Equal(t, 1, env.notificationCount(t, "u1", shared.NotificationLevelUp))

	features, err := env.db.Rewards().ListFeatures("u1")
	require.NoError(t, err)
	assert.Contains(t, features, "custom_profile_banner")

	unlocked, err := env.db.Rewards().UnlockedRewardIDs("u1")
	require.NoError(t, err)
	assert.True(t, unlocked["starter-templates"])

	_, err = env.xp.GrantXP(env.ctx, "u1", "test", 10, catalog.CategoryAchievement)
	require.NoError(t, err)
	assert.Equal(t, 1, env.notificationCount(t, "u1", shared.NotificationLevelUp))
	assert.Equal(t, int64(320), env.totalXP(t, "u1"))
}

func TestGrantXPFiresEveryCrossedLevel(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 700, "")
	require.NoError(t, err)

	assert.Equal(t, 2, env.notificationCount(t, "u1", shared.NotificationLevelUp))
	assert.Equal(t, int64(800), env.totalXP(t, "u1"))

	history, err := env.xp.GetHistory(env.ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestGrantXPIgnoresNonPositive(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	gain, err := env.xp.GrantXP(env.ctx, "u1", "test", 0, "")
	require.NoError(t, err)
	assert.Nil(t, gain)
}

func TestRecordDailyActivityStreak(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	streak, err := env.xp.RecordDailyActivity(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.StreakDays)
	assert.False(t, streak.Extended)

	streak, err = env.xp.RecordDailyActivity(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.StreakDays)

	env.clock.Advance(24 * time.Hour)
	streak, err = env.xp.RecordDailyActivity(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, streak.StreakDays)
	assert.True(t, streak.Extended)

	env.clock.Advance(48 * time.Hour)
	streak, err = env.xp.RecordDailyActivity(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.StreakDays)
	assert.Equal(t, 2, streak.LongestStreak)
}

func TestMonthlyXPRestartsWithTheMonth(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 40, "")
	require.NoError(t, err)

	env.clock.At = time.Date(2026, time.November, 2, 13, 0, 0, 0, time.UTC)
	_, err = env.xp.GrantXP(env.ctx, "u1", "test", 10, "")
	require.NoError(t, err)

	level, err := env.xp.GetUserLevel(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), level.CurrentXP)
	assert.Equal(t, int64(10), level.MonthlyXP)
}
