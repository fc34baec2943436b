package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDailyChallengesOncePerDay(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	first, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "quick-task", first[0].ChallengeID)
	assert.Equal(t, string(catalog.DifficultyEasy), first[0].Difficulty)
	assert.Equal(t, model.ChallengeStatusActive, first[0].Status)

	calls := env.gen.calls
	again, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, first[0].ID, again[0].ID)
	assert.Equal(t, calls, env.gen.calls)
}

func TestGenerateDailyChallengesScalesWithLevel(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 2000, "")
	require.NoError(t, err)

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	var got []string
	for _, c := range list {
		got = append(got, c.Difficulty)
	}
	assert.ElementsMatch(t, []string{"easy", "medium", "hard"}, got)
}

func TestGenerateDailyChallengesAvoidsRecentTemplates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	day1, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, day1, 1)

	env.clock.Advance(24 * time.Hour)
	day2, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, day2, 1)
	assert.NotEqual(t, day1[0].ChallengeID, day2[0].ChallengeID)
}

func TestGenerateDailyChallengesPersonalizes(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.gen.completion = "```json\n{\"title\": \"Edit one clip\", \"description\": \"Finish one editing task for your gaming channel\"}\n```"

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Edit one clip", list[0].Title)
	assert.Equal(t, "Finish one editing task for your gaming channel", list[0].Description)
	// Requirements always come from the template.
	require.Len(t, list[0].Requirements, 1)
	assert.Equal(t, string(catalog.ChallengeReqTask), list[0].Requirements[0].Type)
}

func TestGenerateDailyChallengesKeepsTemplateOnBadReply(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.gen.completion = "not json"

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	tmpl := catalog.ChallengePool(catalog.DifficultyEasy)[0]
	assert.Equal(t, tmpl.Title, list[0].Title)
}

func TestChallengeCompletesAndClaimsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	result, err := env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{Title: "Plan the week"})
	require.NoError(t, err)
	require.Len(t, result.Challenges, 1)
	assert.Equal(t, model.ChallengeStatusCompleted, result.Challenges[0].Status)
	assert.NotNil(t, result.Challenges[0].ClaimedAt)

	claim, err := env.challenges.ClaimChallengeRewards(env.ctx, "u1", list[0].ID)
	require.NoError(t, err)
	assert.False(t, claim.Claimed)

	history, err := env.xp.GetHistory(env.ctx, "u1", 100)
	require.NoError(t, err)
	paid := 0
	for _, tx := range history {
		if tx.ActionID == "challenge:quick-task" {
			paid++
		}
	}
	assert.Equal(t, 1, paid)
}

func TestChallengeProgressOnlyRises(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.xp.GrantXP(env.ctx, "u1", "test", 300, "")
	require.NoError(t, err)
	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)

	var trio dto.ChallengeResponse
	for _, c := range list {
		if c.ChallengeID == "task-trio" {
			trio = c
		}
	}
	require.NotEmpty(t, trio.ID)

	_, err = env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{Title: "one"})
	require.NoError(t, err)

	row, err := env.db.Challenges().GetChallenge("u1", trio.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, row.Progress)
	assert.Equal(t, model.ChallengeStatusActive, row.Status)

	_, err = env.challenges.UpdateChallengeProgress(env.ctx, "u1", catalog.ActionDailyLogin, 1)
	require.NoError(t, err)
	row, err = env.db.Challenges().GetChallenge("u1", trio.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, row.Progress)

	for _, title := range []string{"two", "three"} {
		_, err = env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{Title: title})
		require.NoError(t, err)
	}
	row, err = env.db.Challenges().GetChallenge("u1", trio.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeStatusCompleted, row.Status)
	assert.Equal(t, 100, row.Progress)
}

func TestClaimChallengeNotCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)

	_, err = env.challenges.ClaimChallengeRewards(env.ctx, "u1", list[0].ID)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = env.challenges.ClaimChallengeRewards(env.ctx, "someone-else", list[0].ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestAbandonChallenge(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	list, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, env.challenges.AbandonChallenge(env.ctx, "u1", list[0].ID))
	requireStatus(t, env.challenges.AbandonChallenge(env.ctx, "u1", list[0].ID), http.StatusConflict)
	requireStatus(t, env.challenges.AbandonChallenge(env.ctx, "u1", "missing"), http.StatusNotFound)

	// An abandoned challenge no longer progresses.
	result, err := env.activity.CompleteTask(env.ctx, "u1", dto.CompleteTaskRequest{Title: "late"})
	require.NoError(t, err)
	assert.Empty(t, result.Challenges)
}

func TestExpireChallenges(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	_, err := env.challenges.GenerateDailyChallenges(env.ctx, "u1")
	require.NoError(t, err)

	n, err := env.challenges.ExpireChallenges(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	env.clock.Advance(12 * time.Hour)
	n, err = env.challenges.ExpireChallenges(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTimeWindowCountsOnlyCreatorActions(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.clock.At = time.Date(2026, time.October, 14, 6, 0, 0, 0, time.UTC)
	since := env.clock.Now()
	req := catalog.ChallengeRequirement{Type: catalog.ChallengeReqTime, Target: catalog.TimeWindowMorning, Count: 1}

	// A grant that crosses a level also pays the level-up bonus.
	_, err := env.xp.GrantXP(env.ctx, "u1", "challenge:quick-task", 300, catalog.CategoryConsistency)
	require.NoError(t, err)
	stats, err := env.db.Users().GetStats("u1", env.clock.Now())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Level)

	n, err := env.challenges.requirementCount("u1", req, since, stats)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = env.xp.AwardXP(env.ctx, "u1", catalog.ActionCompleteTask, nil)
	require.NoError(t, err)
	n, err = env.challenges.requirementCount("u1", req, since, stats)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
