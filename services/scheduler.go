package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// SchedulerService runs the periodic maintenance jobs in the configured
// timezone.
type SchedulerService struct {
	appContext.DefaultService

	scheduler gocron.Scheduler

	challengeSvc   *ChallengeService
	rewardSvc      *RewardService
	leaderboardSvc *LeaderboardService
	rateLimitSvc   *RateLimitService
}

const SCHEDULER_SVC = "scheduler_svc"

func (svc SchedulerService) Id() string {
	return SCHEDULER_SVC
}

func (svc *SchedulerService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SchedulerService) Start() error {
	settingsSvc := svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.rewardSvc = svc.Service(REWARD_SVC).(*RewardService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(settingsSvc.Clock().Location()))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	svc.scheduler = scheduler

	midnight := gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5)))
	jobs := []struct {
		name       string
		definition gocron.JobDefinition
		run        func(ctx context.Context) error
	}{
		{"expire-challenges", midnight, svc.expireChallenges},
		{"expire-perks", gocron.DurationJob(time.Hour), svc.expirePerks},
		{"snapshot-leaderboards", gocron.DurationJob(time.Hour), svc.leaderboardSvc.SnapshotLeaderboards},
		{"sweep-rate-limits", gocron.DurationJob(10 * time.Minute), svc.sweepRateLimits},
	}
	for _, j := range jobs {
		if _, err := scheduler.NewJob(j.definition, gocron.NewTask(svc.wrap(j.name, j.run)), gocron.WithName(j.name)); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}

	scheduler.Start()
	log.WithField("jobs", len(jobs)).Info("Scheduler started")
	return nil
}

func (svc *SchedulerService) Shutdown() {
	if svc.scheduler == nil {
		return
	}
	if err := svc.scheduler.Shutdown(); err != nil {
		log.WithError(err).Error("Failed to stop scheduler")
	}
}

func (svc *SchedulerService) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		start := time.Now()
		if err := run(context.Background()); err != nil {
			log.WithFields(log.Fields{"job": name, "error": err}).Error("Scheduled job failed")
			return
		}
		log.WithFields(log.Fields{"job": name, "duration": time.Since(start)}).Debug("Scheduled job finished")
	}
}

func (svc *SchedulerService) expireChallenges(ctx context.Context) error {
	_, err := svc.challengeSvc.ExpireChallenges(ctx)
	return err
}

func (svc *SchedulerService) expirePerks(ctx context.Context) error {
	_, err := svc.rewardSvc.ExpirePerks(ctx)
	return err
}

func (svc *SchedulerService) sweepRateLimits(ctx context.Context) error {
	if n := svc.rateLimitSvc.Sweep(); n > 0 {
		log.WithField("buckets", n).Debug("Idle rate limit buckets removed")
	}
	return nil
}
