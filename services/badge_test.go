package services

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndAwardBadgesAwardsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	awarded, err := env.badges.CheckAndAwardBadges(env.ctx, "u1", catalog.MetricContentPublished, 1)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, catalog.BadgeFirstSteps, awarded[0].ID)
	assert.Equal(t, int64(100), env.totalXP(t, "u1"))

	awarded, err = env.badges.CheckAndAwardBadges(env.ctx, "u1", catalog.MetricContentPublished, 1)
	require.NoError(t, err)
	assert.Empty(t, awarded)
	assert.Equal(t, int64(100), env.totalXP(t, "u1"))
	assert.Equal(t, 1, env.notificationCount(t, "u1", shared.NotificationBadge))
}

func TestCheckAndAwardBadgesOnlyEvaluatesTheMetric(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	awarded, err := env.badges.CheckAndAwardBadges(env.ctx, "u1", catalog.MetricTasksCompleted, 1)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "task-starter", awarded[0].ID)

	earned, err := env.db.Badges().EarnedBadgeIDs("u1")
	require.NoError(t, err)
	assert.False(t, earned[catalog.BadgeFirstSteps])
}

func TestAwardBadgeUnknownIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	ok, err := env.badges.AwardBadge(env.ctx, "u1", "no-such-badge")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.badges.AwardBadge(env.ctx, "u1", "on-fire")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHiddenAchievementsListedOnlyOnceEarned(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	ids := func(items []dto.AchievementResponse) []string {
		out := make([]string, 0, len(items))
		for _, a := range items {
			out = append(out, a.ID)
		}
		return out
	}

	list, err := env.badges.ListAchievements(env.ctx, "u1", "")
	require.NoError(t, err)
	assert.NotContains(t, ids(list), catalog.AchievementNightOwl)
	assert.NotContains(t, ids(list), "streak-legend")
	assert.Contains(t, ids(list), catalog.AchievementGettingStarted)

	_, err = env.db.Badges().CreateUserAchievement(&model.UserAchievement{
		UserID:        "u1",
		AchievementID: catalog.AchievementNightOwl,
		Kind:          model.AchievementKindCatalog,
		EarnedAt:      env.clock.Now(),
	})
	require.NoError(t, err)

	list, err = env.badges.ListAchievements(env.ctx, "u1", "")
	require.NoError(t, err)
	assert.Contains(t, ids(list), catalog.AchievementNightOwl)

	anonymous, err := env.badges.ListAchievements(env.ctx, "", "")
	require.NoError(t, err)
	assert.NotContains(t, ids(anonymous), catalog.AchievementNightOwl)
}

func TestListBadgesMarksEarned(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.badges.AwardBadge(env.ctx, "u1", catalog.BadgeFirstSteps)
	require.NoError(t, err)

	list, err := env.badges.ListBadges(env.ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, list, len(catalog.Badges()))
	for _, b := range list {
		assert.Equal(t, b.ID == catalog.BadgeFirstSteps, b.Earned, b.ID)
	}
}

func TestCheckAchievementsPrefersServerMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	awarded, err := env.badges.CheckAchievements(env.ctx, "u1", dto.CheckAchievementsRequest{
		Metrics: map[string]float64{
			catalog.MetricContentPublished: 5,
			catalog.MetricTasksCompleted:   3,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, awarded)

	_, err = env.activity.PublishContent(env.ctx, "u1", dto.PublishContentRequest{Title: "First video", Platform: "YouTube"})
	require.NoError(t, err)
	result, err := env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{Title: "Write a script"})
	require.NoError(t, err)

	var got []string
	for _, a := range result.Achievements {
		got = append(got, a.ID)
	}
	assert.Contains(t, got, catalog.AchievementGettingStarted)

	titles, err := env.db.Badges().ListTitles("u1")
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Creator", titles[0].Title)
}

func TestNightOwlCountsEarlyMorningTasks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	start := time.Date(2026, time.October, 1, 2, 0, 0, 0, time.UTC)
	for i := 0; i < nightOwlTasks; i++ {
		at := start.Add(time.Duration(i%10) * 24 * time.Hour)
		require.NoError(t, env.db.Activity().CreateTask(&model.Task{
			UserID:      "u1",
			Title:       "late task",
			CompletedAt: &at,
			CreatedAt:   at,
		}))
	}

	awarded, err := env.badges.CheckAndAwardAchievements(env.ctx, "u1", map[string]float64{})
	require.NoError(t, err)
	var got []string
	for _, a := range awarded {
		got = append(got, a.ID)
	}
	assert.Contains(t, got, catalog.AchievementNightOwl)
	assert.Zero(t, env.notificationCount(t, "u1", shared.NotificationAchievement))
}
