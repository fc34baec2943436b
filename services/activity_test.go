package services

import (
	"net/http"
	"testing"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishContentReportsUnlocks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	result, err := env.activity.PublishContent(env.ctx, "u1", dto.PublishContentRequest{Title: "Pilot", Platform: "youtube"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ResourceID)
	require.NotNil(t, result.XP)
	assert.Equal(t, 100, result.XP.XPAmount)

	var badges []string
	for _, b := range result.Badges {
		badges = append(badges, b.ID)
	}
	assert.Equal(t, []string{catalog.BadgeFirstSteps}, badges)

	// Publish XP plus the badge reward.
	assert.Equal(t, int64(200), env.totalXP(t, "u1"))

	stats, err := env.db.Users().GetStats("u1", env.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)

	again, err := env.activity.PublishContent(env.ctx, "u1", dto.PublishContentRequest{Title: "Episode 2", Platform: "youtube"})
	require.NoError(t, err)
	assert.Empty(t, again.Badges)
}

func TestCompleteExistingTask(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	task := &model.Task{UserID: "u1", Title: "Record intro", CreatedAt: env.clock.Now()}
	require.NoError(t, env.db.Activity().CreateTask(task))

	result, err := env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, task.ID, result.ResourceID)
	require.NotNil(t, result.XP)
	assert.Equal(t, 20, result.XP.XPAmount)

	_, err = env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{TaskID: task.ID})
	requireStatus(t, err, http.StatusConflict)

	_, err = env.activity.CompleteTask(env.ctx, "u2", dto.CompleteTaskRequest{TaskID: task.ID})
	requireStatus(t, err, http.StatusNotFound)
}

func TestRecordEngagement(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.activity.RecordEngagement(env.ctx, "u1", "wave")
	requireStatus(t, err, http.StatusBadRequest)

	result, err := env.activity.RecordEngagement(env.ctx, "u1", model.EngagementHelp)
	require.NoError(t, err)
	require.NotNil(t, result.XP)
	assert.Equal(t, 30, result.XP.XPAmount)

	n, err := env.db.Activity().CountEngagementSince("u1", model.EngagementHelp, env.clock.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecordLoginOncePerDay(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	streak, err := env.activity.RecordLogin(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.StreakDays)
	require.NotNil(t, streak.XP)
	assert.Equal(t, 10, streak.XP.XPAmount)

	streak, err = env.activity.RecordLogin(env.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.StreakDays)
	assert.Nil(t, streak.XP)
}
