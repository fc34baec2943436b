package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	BucketChat        = "chat"
	BucketGeneration  = "generation"
	BucketEmbedding   = "embedding"
	BucketAPIGeneral  = "api_general"
	BucketActivityAPI = "activity"
)

// bucketIdleTTL is how long a full, untouched bucket is kept before the sweep
// drops it.
const bucketIdleTTL = time.Hour

// RateLimitConfig is the effective setting for one bucket name.
type RateLimitConfig struct {
	Bucket          string  `json:"bucket"`
	Capacity        int     `json:"capacity"`
	RefillPerMinute float64 `json:"refill_per_minute"`
	Description     string  `json:"description,omitempty"`
	IsActive        bool    `json:"is_active"`
}

type tokenBucket struct {
	tokens     float64
	lastUpdate time.Time
}

// RateLimitService keeps one token bucket per (bucket, key) in memory. A
// request that finds the bucket empty fails immediately; nothing is queued.
type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	buckets map[string]*tokenBucket
	mutex   sync.Mutex

	dbSvc *DatabaseService
	clock shared.Clock
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	svc.buckets = make(map[string]*tokenBucket)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	settingsSvc := svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.clock = settingsSvc.Clock()

	svc.initConfigs(settingsSvc.Settings().RateLimits)
	if err := svc.loadOverrides(); err != nil {
		log.WithError(err).Warn("Failed to load rate limit overrides")
	}
	return nil
}

func (svc *RateLimitService) initConfigs(settings map[string]BucketSettings) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if svc.configs == nil {
		svc.configs = make(map[string]*RateLimitConfig)
	}
	if svc.buckets == nil {
		svc.buckets = make(map[string]*tokenBucket)
	}
	for name, s := range settings {
		svc.configs[name] = &RateLimitConfig{
			Bucket:          name,
			Capacity:        s.Capacity,
			RefillPerMinute: s.RefillPerMinute,
			IsActive:        true,
		}
	}
}

// loadOverrides applies the active rules stored in the database on top of the
// configured buckets.
func (svc *RateLimitService) loadOverrides() error {
	rules, err := svc.dbSvc.RateLimits().ActiveRules()
	if err != nil {
		return err
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	for _, r := range rules {
		svc.configs[r.Bucket] = &RateLimitConfig{
			Bucket:          r.Bucket,
			Capacity:        r.Capacity,
			RefillPerMinute: r.RefillPerMinute,
			Description:     r.Description,
			IsActive:        r.IsActive,
		}
	}
	if len(rules) > 0 {
		log.WithField("count", len(rules)).Info("Loaded rate limit overrides")
	}
	return nil
}

// SaveOverride persists a rule and applies it immediately. Existing buckets
// keep their tokens but are clamped to the new capacity.
func (svc *RateLimitService) SaveOverride(rule *model.RateLimitRule) error {
	now := svc.clock.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now
	if err := svc.dbSvc.RateLimits().SaveRule(rule); err != nil {
		return svc.dbSvc.HandleError(err)
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.configs[rule.Bucket] = &RateLimitConfig{
		Bucket:          rule.Bucket,
		Capacity:        rule.Capacity,
		RefillPerMinute: rule.RefillPerMinute,
		Description:     rule.Description,
		IsActive:        rule.IsActive,
	}
	for k, b := range svc.buckets {
		if strings.HasPrefix(k, rule.Bucket+":") && b.tokens > float64(rule.Capacity) {
			b.tokens = float64(rule.Capacity)
		}
	}
	return nil
}

// Allow takes one token from the (bucket, key) pair. Unknown or inactive
// buckets always allow.
func (svc *RateLimitService) Allow(bucket, key string) *dto.RateLimitInfo {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	config, ok := svc.configs[bucket]
	if !ok || !config.IsActive {
		return &dto.RateLimitInfo{Allowed: true, Bucket: bucket, Remaining: -1}
	}

	now := svc.clock.Now()
	id := bucket + ":" + key
	b, ok := svc.buckets[id]
	if !ok {
		b = &tokenBucket{tokens: float64(config.Capacity), lastUpdate: now}
		svc.buckets[id] = b
	} else {
		refill(b, config, now)
	}

	if b.tokens < 1 {
		rateLimitRejectedTotal.WithLabelValues(bucket).Inc()
		return &dto.RateLimitInfo{
			Allowed:    false,
			Bucket:     bucket,
			Remaining:  0,
			RetryAfter: retryAfter(b, config),
		}
	}

	b.tokens--
	return &dto.RateLimitInfo{Allowed: true, Bucket: bucket, Remaining: int(b.tokens)}
}

// Check is Allow for service callers: it returns ErrRateLimited wrapped in a
// 429 error when the bucket is empty.
func (svc *RateLimitService) Check(bucket, key string) error {
	info := svc.Allow(bucket, key)
	if info.Allowed {
		return nil
	}
	log.WithFields(log.Fields{"bucket": bucket, "key": key, "retry_after": info.RetryAfter}).Warn("Rate limit exceeded")
	appErr := shared.NewTooManyRequestsError(shared.ErrRateLimited, "Rate limit exceeded")
	appErr.Data = info
	return appErr
}

func refill(b *tokenBucket, config *RateLimitConfig, now time.Time) {
	elapsed := now.Sub(b.lastUpdate).Minutes()
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(float64(config.Capacity), b.tokens+elapsed*config.RefillPerMinute)
	b.lastUpdate = now
}

func retryAfter(b *tokenBucket, config *RateLimitConfig) time.Duration {
	if config.RefillPerMinute <= 0 {
		return 0
	}
	missing := 1 - b.tokens
	return time.Duration(missing / config.RefillPerMinute * float64(time.Minute)).Round(time.Second)
}

// Sweep drops buckets that have refilled completely and sat idle, so the map
// does not grow with every visitor.
func (svc *RateLimitService) Sweep() int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.clock.Now()
	removed := 0
	for id, b := range svc.buckets {
		name, _, _ := strings.Cut(id, ":")
		config, ok := svc.configs[name]
		if !ok {
			delete(svc.buckets, id)
			removed++
			continue
		}
		idle := now.Sub(b.lastUpdate)
		refill(b, config, now)
		if b.tokens >= float64(config.Capacity) && idle >= bucketIdleTTL {
			delete(svc.buckets, id)
			removed++
		}
	}
	return removed
}

func (svc *RateLimitService) Configs() []RateLimitConfig {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	out := make([]RateLimitConfig, 0, len(svc.configs))
	for _, c := range svc.configs {
		out = append(out, *c)
	}
	return out
}
