package services

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUConversationCacheExpiresIdleEntries(t *testing.T) {
	clock := &shared.FixedClock{At: testNow}
	cache, err := NewLRUConversationCache(2, time.Hour, clock)
	require.NoError(t, err)

	cache.Set(t.Context(), &model.AIConversation{ID: "a"})
	clock.Advance(50 * time.Minute)
	_, ok := cache.Get(t.Context(), "a")
	require.True(t, ok)

	// The read above extended the entry.
	clock.Advance(50 * time.Minute)
	_, ok = cache.Get(t.Context(), "a")
	require.True(t, ok)

	clock.Advance(61 * time.Minute)
	_, ok = cache.Get(t.Context(), "a")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestLRUConversationCacheEvictsOldest(t *testing.T) {
	cache, err := NewLRUConversationCache(2, time.Hour, &shared.FixedClock{At: testNow})
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		cache.Set(t.Context(), &model.AIConversation{ID: id})
	}
	_, ok := cache.Get(t.Context(), "a")
	assert.False(t, ok)
	_, ok = cache.Get(t.Context(), "c")
	assert.True(t, ok)

	cache.Delete(t.Context(), "c")
	_, ok = cache.Get(t.Context(), "c")
	assert.False(t, ok)
}
