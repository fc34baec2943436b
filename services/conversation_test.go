package services

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/onboarding"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousConversationStaysInCache(t *testing.T) {
	env := newTestEnv(t)
	env.gen.script("Hello", " there")

	var chunks []string
	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{Message: "hi"}, func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", turn.Reply)
	assert.Equal(t, []string{"Hello", " there"}, chunks)

	_, err = env.db.Conversations().GetConversation(turn.ConversationID)
	assert.Error(t, err)

	next, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{
		ConversationID: turn.ConversationID,
		Message:        "tell me more",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, turn.ConversationID, next.ConversationID)

	conv, err := env.conversations.GetConversation(env.ctx, "", turn.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)

	_, err = env.conversations.GetConversation(env.ctx, "u1", turn.ConversationID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestPartialReplyIsSavedWithMarker(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.gen.script("Part one. ", "Part two.")
	env.gen.failAfter = 1

	var chunks []string
	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u1", Message: "plan my week"}, func(s string) {
		chunks = append(chunks, s)
	})
	requireStatus(t, err, http.StatusBadGateway)
	assert.Nil(t, turn)
	assert.Equal(t, []string{"Part one. ", StreamErrorMarker}, chunks)

	list, err := env.conversations.ListConversations(env.ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	conv, err := env.conversations.GetConversation(env.ctx, "u1", list[0].ID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Part one. ", conv.Messages[1].Content)
	assert.True(t, conv.Messages[1].Partial)
	assert.Contains(t, conv.Messages[1].Flags, FlagPartial)

	// The partial reply is left out of the next prompt's history.
	history := env.conversations.window([]model.ConversationMessage{
		{Role: shared.RoleUser, Content: "plan my week"},
		{Role: shared.RoleAssistant, Content: "Part one. ", Partial: true},
		{Role: shared.RoleUser, Content: "try again"},
	})
	assert.Len(t, history, 2)
}

func TestAssistantTurnRecordsEngagement(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "u1")
	user.ContentNiche = "cooking"
	require.NoError(t, env.db.Users().UpdateUser(user, env.clock.Now()))
	env.gen.script("Try a 30 second recipe short.")

	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u1", Message: "ideas?"}, nil)
	require.NoError(t, err)
	assert.Empty(t, turn.Step)
	assert.Contains(t, env.gen.lastSystem(), "Niche: cooking")

	n, err := env.db.Activity().CountEngagementSince("u1", model.EngagementAIInteraction, env.clock.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(5), env.totalXP(t, "u1"))

	stored, err := env.db.Conversations().GetConversation(turn.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
}

func runOnboarding(t *testing.T, env *testEnv, userID string) *dto.ConversationTurn {
	t.Helper()
	env.gen.script("Thanks, noted.")

	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{
		UserID:         userID,
		Message:        "1",
		InitialContext: map[string]interface{}{"type": onboarding.TypeOnboarding},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(onboarding.StepPlatform), turn.Step)

	answers := []string{"Twitch", "gaming", "a phone and a ring light", "grow to 1k subscribers", "finding time to edit"}
	for _, a := range answers {
		turn, err = env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{
			UserID:         userID,
			ConversationID: turn.ConversationID,
			Message:        a,
		}, nil)
		require.NoError(t, err)
	}
	return turn
}

func TestOnboardingCompletionSavesProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")

	turn := runOnboarding(t, env, "u1")
	assert.True(t, turn.Completed)
	assert.Equal(t, string(onboarding.StepComplete), turn.Step)

	user, err := env.db.Users().GetUser("u1")
	require.NoError(t, err)
	require.NotNil(t, user.OnboardedAt)
	assert.Equal(t, onboarding.LevelBeginner, user.CreatorLevel)
	assert.Equal(t, []string{onboarding.PlatformTwitch}, user.Platforms.Data())
	assert.Equal(t, "gaming", user.ContentNiche)
	assert.Equal(t, "finding time to edit", user.Challenges)

	// Interview turns are not assistant interactions.
	n, err := env.db.Activity().CountEngagementSince("u1", model.EngagementAIInteraction, env.clock.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := env.conversations.ListConversations(env.ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shared.ConversationTypeOnboarding, list[0].Type)
	assert.Equal(t, 12, list[0].MessageCount)
}

func TestOnboardingFlagsRepeatedQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.gen.script("Nice! What is your experience level as a creator?")

	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{
		Message:        "2",
		InitialContext: map[string]interface{}{"type": onboarding.TypeOnboarding},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(onboarding.StepPlatform), turn.Step)
	assert.Equal(t, []string{"reasked:" + string(onboarding.StepWelcome)}, turn.Flags)
}

func TestAttachAnonymousOnboarding(t *testing.T) {
	env := newTestEnv(t)

	turn := runOnboarding(t, env, "")
	require.True(t, turn.Completed)

	env.seedUser(t, "u1")
	attached, err := env.conversations.AttachConversation(env.ctx, "u1", turn.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "u1", attached.UserID)

	user, err := env.db.Users().GetUser("u1")
	require.NoError(t, err)
	assert.NotNil(t, user.OnboardedAt)
	assert.Equal(t, "gaming", user.ContentNiche)

	stored, err := env.db.Conversations().GetConversation(turn.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)

	_, err = env.conversations.AttachConversation(env.ctx, "u2", turn.ConversationID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestConversationOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.seedUser(t, "u2")
	env.gen.script("ok")

	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u1", Message: "hi"}, nil)
	require.NoError(t, err)

	_, err = env.conversations.GetConversation(env.ctx, "u2", turn.ConversationID)
	requireStatus(t, err, http.StatusNotFound)
	_, err = env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u2", ConversationID: turn.ConversationID, Message: "hi"}, nil)
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, env.conversations.DeleteConversation(env.ctx, "u2", turn.ConversationID), http.StatusNotFound)

	require.NoError(t, env.conversations.DeleteConversation(env.ctx, "u1", turn.ConversationID))
	_, err = env.conversations.GetConversation(env.ctx, "u1", turn.ConversationID)
	requireStatus(t, err, http.StatusNotFound)
	assert.True(t, shared.IsNotFound(err))
}

func TestAnonymousRateLimitIsPerConversation(t *testing.T) {
	env := newTestEnv(t)
	env.gen.script("ok")

	first, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{Message: "hi"}, nil)
	require.NoError(t, err)

	capacity := DefaultSettings().RateLimits[BucketChat].Capacity
	for i := 1; i < capacity; i++ {
		_, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{ConversationID: first.ConversationID, Message: "hi"}, nil)
		require.NoError(t, err)
	}

	_, err = env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{ConversationID: first.ConversationID, Message: "hi"}, nil)
	requireStatus(t, err, http.StatusTooManyRequests)
	assert.False(t, strings.Contains(err.Error(), "hi"))

	// Another visitor starts with a full bucket.
	other, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{Message: "hello"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ConversationID, other.ConversationID)
}

func TestTurnSurvivesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.gen.script("hello", " there")
	require.NoError(t, env.db.Db().Migrator().DropTable(&model.AIConversation{}))

	var chunks []string
	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u1", Message: "hi"}, func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", turn.Reply)
	assert.Equal(t, []string{"hello", " there"}, chunks)

	n, err := env.db.Activity().CountEngagementSince("u1", model.EngagementAIInteraction, env.clock.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	conv, err := env.conversations.GetConversation(env.ctx, "u1", turn.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)
}

func TestConcurrentTurnsKeepEveryMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1")
	env.gen.script("ok")

	turn, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{UserID: "u1", Message: "first"}, nil)
	require.NoError(t, err)
	// Both turns start from the stored copy.
	env.conversations.cache.Delete(env.ctx, turn.ConversationID)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, msg := range []string{"second", "third"} {
		wg.Add(1)
		go func(msg string) {
			defer wg.Done()
			_, err := env.conversations.ProcessMessage(env.ctx, dto.ProcessMessageRequest{
				UserID:         "u1",
				ConversationID: turn.ConversationID,
				Message:        msg,
			}, nil)
			errs <- err
		}(msg)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := env.db.Conversations().GetConversation(turn.ConversationID)
	require.NoError(t, err)
	messages := stored.Messages.Data()
	require.Len(t, messages, 6)

	var users []string
	for _, m := range messages {
		if m.Role == shared.RoleUser {
			users = append(users, m.Content)
		}
	}
	assert.ElementsMatch(t, []string{"first", "second", "third"}, users)
}
