package services

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// A Wednesday afternoon: no weekend or time-of-day bonus applies.
var testNow = time.Date(2026, time.October, 14, 13, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx   context.Context
	db    *DatabaseService
	clock *shared.FixedClock
	gen   *fakeGenerator

	notifications *NotificationService
	rateLimit     *RateLimitService
	cascade       *CascadeService
	xp            *XPService
	badges        *BadgeService
	rewards       *RewardService
	challenges    *ChallengeService
	leaderboard   *LeaderboardService
	users         *UserService
	activity      *ActivityService
	conversations *ConversationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	dbSvc, err := NewDatabaseService(db)
	require.NoError(t, err)

	settings := DefaultSettings()
	clock := &shared.FixedClock{At: testNow}
	gen := &fakeGenerator{}

	env := &testEnv{ctx: context.Background(), db: dbSvc, clock: clock, gen: gen}

	env.notifications = &NotificationService{dbSvc: dbSvc, clock: clock}
	env.rateLimit = &RateLimitService{dbSvc: dbSvc, clock: clock}
	env.rateLimit.initConfigs(settings.RateLimits)

	env.cascade = &CascadeService{maxDepth: settings.Cascade.MaxDepth}
	env.xp = &XPService{dbSvc: dbSvc, cascade: env.cascade, notifier: env.notifications, clock: clock}
	env.badges = &BadgeService{dbSvc: dbSvc, cascade: env.cascade, notifier: env.notifications, clock: clock}
	env.rewards = &RewardService{dbSvc: dbSvc, notifier: env.notifications, clock: clock}
	env.cascade.xpSvc = env.xp
	env.cascade.badgeSvc = env.badges
	env.cascade.rewardSvc = env.rewards

	env.challenges = &ChallengeService{
		dbSvc:            dbSvc,
		xpSvc:            env.xp,
		rateLimitSvc:     env.rateLimit,
		generator:        gen,
		notifier:         env.notifications,
		clock:            clock,
		repeatWindowDays: settings.Challenges.RepeatWindowDays,
		temperature:      settings.Challenges.Temperature,
		pick:             func(int) int { return 0 },
	}
	env.leaderboard = &LeaderboardService{
		dbSvc:        dbSvc,
		clock:        clock,
		defaultLimit: settings.Leaderboard.DefaultLimit,
		maxLimit:     settings.Leaderboard.MaxLimit,
	}
	env.users = &UserService{dbSvc: dbSvc, xpSvc: env.xp, badgeSvc: env.badges, cascade: env.cascade, clock: clock}
	env.activity = &ActivityService{dbSvc: dbSvc, xpSvc: env.xp, badgeSvc: env.badges, challengeSvc: env.challenges, clock: clock}

	cache, err := NewLRUConversationCache(64, time.Hour, clock)
	require.NoError(t, err)
	env.conversations = &ConversationService{
		dbSvc:         dbSvc,
		userSvc:       env.users,
		activitySvc:   env.activity,
		rateLimitSvc:  env.rateLimit,
		generator:     gen,
		cache:         cache,
		clock:         clock,
		historyWindow: settings.Conversation.HistoryWindow,
		temperature:   settings.Conversation.Temperature,
		maxTokens:     settings.Conversation.MaxTokens,
		handoff:       func(fn func()) { fn() },
	}
	return env
}

// seedUser stores a bare user row without running the signup cascade.
func (env *testEnv) seedUser(t *testing.T, id string) *model.User {
	t.Helper()
	user, err := env.db.Users().CreateUser(&model.User{
		ID:          id,
		DisplayName: id,
		Platforms:   datatypes.NewJSONType([]string{}),
		CreatedAt:   env.clock.Now(),
		UpdatedAt:   env.clock.Now(),
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) totalXP(t *testing.T, userID string) int64 {
	t.Helper()
	stats, err := env.db.Users().GetStats(userID, env.clock.Now())
	require.NoError(t, err)
	return stats.TotalXP
}

func (env *testEnv) notificationCount(t *testing.T, userID, kind string) int {
	t.Helper()
	rows, err := env.db.Notifications().ListNotifications(userID, false, 100)
	require.NoError(t, err)
	n := 0
	for _, r := range rows {
		if r.Type == kind {
			n++
		}
	}
	return n
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
}

var errGeneration = errors.New("generation failed")

// fakeGenerator streams reply chunk by chunk. When failAfter is positive the
// stream errors after that many chunks.
type fakeGenerator struct {
	mu sync.Mutex

	reply     []string
	failAfter int

	completion  string
	completeErr error

	systems []string
	calls   int
}

func (g *fakeGenerator) script(chunks ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reply = chunks
	g.failAfter = 0
}

func (g *fakeGenerator) lastSystem() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.systems) == 0 {
		return ""
	}
	return g.systems[len(g.systems)-1]
}

func (g *fakeGenerator) Complete(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.completion, g.completeErr
}

func (g *fakeGenerator) Stream(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) iter.Seq2[StreamChunk, error] {
	g.mu.Lock()
	g.calls++
	g.systems = append(g.systems, system)
	chunks, failAfter := g.reply, g.failAfter
	g.mu.Unlock()

	return func(yield func(StreamChunk, error) bool) {
		for i, c := range chunks {
			if failAfter > 0 && i == failAfter {
				yield(StreamChunk{}, errGeneration)
				return
			}
			if !yield(StreamChunk{Text: c}, nil) {
				return
			}
		}
		yield(StreamChunk{Done: true}, nil)
	}
}

func (g *fakeGenerator) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("embeddings disabled")
}
