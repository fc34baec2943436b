package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(clock shared.Clock) *RateLimitService {
	svc := &RateLimitService{clock: clock}
	svc.initConfigs(map[string]BucketSettings{
		"test": {Capacity: 2, RefillPerMinute: 1},
	})
	return svc
}

func TestRateLimitFailsFastWhenEmpty(t *testing.T) {
	clock := &shared.FixedClock{At: testNow}
	svc := newTestRateLimiter(clock)

	assert.True(t, svc.Allow("test", "k").Allowed)
	assert.True(t, svc.Allow("test", "k").Allowed)

	info := svc.Allow("test", "k")
	assert.False(t, info.Allowed)
	assert.Equal(t, time.Minute, info.RetryAfter)

	err := svc.Check("test", "k")
	requireStatus(t, err, http.StatusTooManyRequests)
	assert.True(t, errors.Is(err, shared.ErrRateLimited))

	// Keys are independent.
	assert.True(t, svc.Allow("test", "other").Allowed)
}

func TestRateLimitRefills(t *testing.T) {
	clock := &shared.FixedClock{At: testNow}
	svc := newTestRateLimiter(clock)

	svc.Allow("test", "k")
	svc.Allow("test", "k")
	require.False(t, svc.Allow("test", "k").Allowed)

	clock.Advance(time.Minute)
	assert.True(t, svc.Allow("test", "k").Allowed)
	assert.False(t, svc.Allow("test", "k").Allowed)
}

func TestRateLimitUnknownBucketAllows(t *testing.T) {
	svc := newTestRateLimiter(&shared.FixedClock{At: testNow})

	info := svc.Allow("nope", "k")
	assert.True(t, info.Allowed)
	assert.Equal(t, -1, info.Remaining)
}

func TestRateLimitSweepDropsIdleBuckets(t *testing.T) {
	clock := &shared.FixedClock{At: testNow}
	svc := newTestRateLimiter(clock)

	svc.Allow("test", "idle")
	assert.Zero(t, svc.Sweep())

	clock.Advance(30 * time.Minute)
	svc.Allow("test", "busy")
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 1, svc.Sweep())
	svc.mutex.Lock()
	_, idle := svc.buckets["test:idle"]
	_, busy := svc.buckets["test:busy"]
	svc.mutex.Unlock()
	assert.False(t, idle)
	assert.True(t, busy)
}

func TestRateLimitOverride(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.rateLimit.Check(BucketChat, "u1"))
	}

	require.NoError(t, env.rateLimit.SaveOverride(&model.RateLimitRule{
		Bucket:          BucketChat,
		Capacity:        1,
		RefillPerMinute: 1,
		IsActive:        true,
	}))
	require.NoError(t, env.rateLimit.Check(BucketChat, "u1"))
	requireStatus(t, env.rateLimit.Check(BucketChat, "u1"), http.StatusTooManyRequests)

	fresh := &RateLimitService{dbSvc: env.db, clock: env.clock}
	fresh.initConfigs(DefaultSettings().RateLimits)
	require.NoError(t, fresh.loadOverrides())
	for _, c := range fresh.Configs() {
		if c.Bucket == BucketChat {
			assert.Equal(t, 1, c.Capacity)
		}
	}
}
