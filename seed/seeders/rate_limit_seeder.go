package seeders

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services"
	log "github.com/sirupsen/logrus"
)

// RateLimitSeeder writes override rules that loosen limits for local work.
type RateLimitSeeder struct {
	dbSvc *services.DatabaseService
}

func NewRateLimitSeeder(dbSvc *services.DatabaseService) *RateLimitSeeder {
	return &RateLimitSeeder{dbSvc: dbSvc}
}

func (s *RateLimitSeeder) SeedRules() error {
	existing, err := s.dbSvc.RateLimits().ActiveRules()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.Bucket] = true
	}

	now := time.Now()
	rules := []model.RateLimitRule{
		{Bucket: services.BucketChat, Capacity: 100, RefillPerMinute: 60, Description: "Development chat limit"},
		{Bucket: services.BucketGeneration, Capacity: 50, RefillPerMinute: 30, Description: "Development generation limit"},
	}
	for _, rule := range rules {
		if have[rule.Bucket] {
			log.WithField("bucket", rule.Bucket).Info("Rate limit rule already exists, skipping")
			continue
		}
		rule.IsActive = true
		rule.CreatedAt = now
		rule.UpdatedAt = now
		if err := s.dbSvc.RateLimits().SaveRule(&rule); err != nil {
			return err
		}
		log.WithField("bucket", rule.Bucket).Info("Created rate limit rule")
	}
	return nil
}
