package services

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

// ConversationCache holds live conversations. Anonymous onboarding
// conversations exist only here.
type ConversationCache interface {
	Get(ctx context.Context, id string) (*model.AIConversation, bool)
	Set(ctx context.Context, conv *model.AIConversation)
	Delete(ctx context.Context, id string)
}

type lruEntry struct {
	conv      *model.AIConversation
	expiresAt time.Time
}

// LRUConversationCache is a bounded in-process cache. Entries also expire
// after ttl without access.
type LRUConversationCache struct {
	cache *lru.Cache
	ttl   time.Duration
	clock shared.Clock
}

func NewLRUConversationCache(size int, ttl time.Duration, clock shared.Clock) (*LRUConversationCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUConversationCache{cache: cache, ttl: ttl, clock: clock}, nil
}

func (c *LRUConversationCache) Get(ctx context.Context, id string) (*model.AIConversation, bool) {
	v, ok := c.cache.Get(id)
	if !ok {
		return nil, false
	}
	entry := v.(*lruEntry)
	now := c.clock.Now()
	if now.After(entry.expiresAt) {
		c.cache.Remove(id)
		return nil, false
	}
	entry.expiresAt = now.Add(c.ttl)
	return entry.conv, true
}

func (c *LRUConversationCache) Set(ctx context.Context, conv *model.AIConversation) {
	c.cache.Add(conv.ID, &lruEntry{conv: conv, expiresAt: c.clock.Now().Add(c.ttl)})
}

func (c *LRUConversationCache) Delete(ctx context.Context, id string) {
	c.cache.Remove(id)
}

func (c *LRUConversationCache) Len() int {
	return c.cache.Len()
}

// RedisConversationCache shares conversations between instances. Failures
// are logged and behave as a miss.
type RedisConversationCache struct {
	redis *RedisService
	ttl   time.Duration
}

func NewRedisConversationCache(redis *RedisService, ttl time.Duration) *RedisConversationCache {
	return &RedisConversationCache{redis: redis, ttl: ttl}
}

func conversationKey(id string) string {
	return "conversation:" + id
}

func (c *RedisConversationCache) Get(ctx context.Context, id string) (*model.AIConversation, bool) {
	var conv model.AIConversation
	found, err := c.redis.GetJSON(ctx, conversationKey(id), &conv)
	if err != nil {
		log.WithFields(log.Fields{"conversation_id": id, "error": err}).Warn("Conversation cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &conv, true
}

func (c *RedisConversationCache) Set(ctx context.Context, conv *model.AIConversation) {
	if err := c.redis.SetJSON(ctx, conversationKey(conv.ID), conv, c.ttl); err != nil {
		log.WithFields(log.Fields{"conversation_id": conv.ID, "error": err}).Warn("Conversation cache write failed")
	}
}

func (c *RedisConversationCache) Delete(ctx context.Context, id string) {
	if err := c.redis.Delete(ctx, conversationKey(id)); err != nil {
		log.WithFields(log.Fields{"conversation_id": id, "error": err}).Warn("Conversation cache delete failed")
	}
}
