package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortScoresTieBreak(t *testing.T) {
	early := testNow.Add(-time.Hour)
	rows := []repositories.ScoreRow{
		{UserID: "c", Score: 10, LastActivity: testNow},
		{UserID: "b", Score: 10, LastActivity: early},
		{UserID: "a", Score: 10, LastActivity: testNow},
		{UserID: "d", Score: 20, LastActivity: testNow},
	}
	sortScores(rows)

	var got []string
	for _, r := range rows {
		got = append(got, r.UserID)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, got)
}

func seedBoard(t *testing.T, env *testEnv) {
	t.Helper()
	for _, id := range []string{"u1", "u2", "u3"} {
		env.seedUser(t, id)
	}
	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 100, "")
	require.NoError(t, err)
	env.clock.Advance(time.Hour)
	_, err = env.xp.GrantXP(env.ctx, "u2", "test", 100, "")
	require.NoError(t, err)
	_, err = env.xp.GrantXP(env.ctx, "u3", "test", 50, "")
	require.NoError(t, err)
}

func TestGetLeaderboardEqualScoresGoToFirstArrival(t *testing.T) {
	env := newTestEnv(t)
	seedBoard(t, env)

	board, err := env.leaderboard.GetLeaderboard(env.ctx, "", "", 0, "u2")
	require.NoError(t, err)
	assert.Equal(t, dto.LeaderboardXP, board.Type)
	assert.Equal(t, dto.TimeframeAllTime, board.Timeframe)
	require.Len(t, board.Entries, 3)
	assert.Equal(t, "u1", board.Entries[0].UserID)
	assert.Equal(t, "u2", board.Entries[1].UserID)
	assert.True(t, board.Entries[1].IsCurrentUser)
	assert.Equal(t, "u3", board.Entries[2].UserID)
	assert.Nil(t, board.CurrentUser)
}

func TestGetLeaderboardCurrentUserOutsideTop(t *testing.T) {
	env := newTestEnv(t)
	seedBoard(t, env)

	board, err := env.leaderboard.GetLeaderboard(env.ctx, dto.LeaderboardXP, dto.TimeframeDaily, 1, "u3")
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 3, board.Total)
	require.NotNil(t, board.CurrentUser)
	assert.Equal(t, 3, board.CurrentUser.Rank)
	assert.Equal(t, "u3", board.CurrentUser.DisplayName)
}

func TestGetLeaderboardRankChange(t *testing.T) {
	env := newTestEnv(t)
	seedBoard(t, env)

	require.NoError(t, env.leaderboard.SnapshotLeaderboards(env.ctx))

	// Rank change compares against the previous period's snapshot.
	env.clock.Advance(24 * time.Hour)
	_, err := env.xp.GrantXP(env.ctx, "u3", "test", 200, "")
	require.NoError(t, err)

	board, err := env.leaderboard.GetLeaderboard(env.ctx, dto.LeaderboardXP, dto.TimeframeAllTime, 10, "")
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)
	top := board.Entries[0]
	assert.Equal(t, "u3", top.UserID)
	require.NotNil(t, top.RankChange)
	assert.Equal(t, 2, *top.RankChange)
	require.NotNil(t, board.Entries[1].RankChange)
	assert.Equal(t, -1, *board.Entries[1].RankChange)
}

func TestGetLeaderboardBadges(t *testing.T) {
	env := newTestEnv(t)
	seedBoard(t, env)

	_, err := env.badges.AwardBadge(env.ctx, "u2", catalog.BadgeFirstSteps)
	require.NoError(t, err)

	board, err := env.leaderboard.GetLeaderboard(env.ctx, dto.LeaderboardBadges, dto.TimeframeWeekly, 10, "")
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "u2", board.Entries[0].UserID)
	require.NotNil(t, board.Entries[0].BadgeCount)
	assert.Equal(t, int64(1), *board.Entries[0].BadgeCount)
}

func TestGetLeaderboardEngagementWeights(t *testing.T) {
	env := newTestEnv(t)
	seedBoard(t, env)

	events := []model.EngagementEvent{
		{UserID: "u1", Kind: model.EngagementHelp},
		{UserID: "u2", Kind: model.EngagementAIInteraction},
		{UserID: "u2", Kind: model.EngagementAIInteraction},
	}
	for i := range events {
		events[i].CreatedAt = env.clock.Now()
		require.NoError(t, env.db.Activity().CreateEngagement(&events[i]))
	}

	board, err := env.leaderboard.GetLeaderboard(env.ctx, dto.LeaderboardEngagement, dto.TimeframeMonthly, 10, "")
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "u1", board.Entries[0].UserID)
	assert.Equal(t, float64(3), board.Entries[0].Score)
	assert.Equal(t, float64(2), board.Entries[1].Score)
}

func TestGetLeaderboardRejectsUnknownBoard(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.leaderboard.GetLeaderboard(env.ctx, "streak", "", 10, "")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = env.leaderboard.GetLeaderboard(env.ctx, dto.LeaderboardXP, "yearly", 10, "")
	requireStatus(t, err, http.StatusBadRequest)
}
