package services

import (
	"context"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	log "github.com/sirupsen/logrus"
)

type JobKind string

const (
	JobLevelUp          JobKind = "level_up"
	JobXPGrant          JobKind = "xp_grant"
	JobBadgeAward       JobKind = "badge_award"
	JobBadgeCheck       JobKind = "badge_check"
	JobAchievementCheck JobKind = "achievement_check"
	JobRewardCheck      JobKind = "reward_check"
)

// Job is one follow-up award step. Only the fields of its kind are read.
type Job struct {
	Kind   JobKind
	UserID string

	Level int

	Amount   int
	Source   string
	Category catalog.Category

	BadgeID string
	Metric  string
	Value   float64
	Metrics map[string]float64

	Trigger catalog.Trigger

	depth int
}

type cascadeQueue struct {
	jobs    []Job
	current int
}

type cascadeKey struct{}

// CascadeService applies award follow-ups as a FIFO work queue instead of
// recursive calls. Jobs submitted while a queue is draining join that queue
// one level deeper; anything past maxDepth is dropped.
type CascadeService struct {
	appContext.DefaultService

	maxDepth int

	xpSvc     *XPService
	badgeSvc  *BadgeService
	rewardSvc *RewardService
}

const CASCADE_SVC = "cascade_svc"

func (svc CascadeService) Id() string {
	return CASCADE_SVC
}

func (svc *CascadeService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CascadeService) Start() error {
	svc.maxDepth = svc.Service(SETTINGS_SVC).(*SettingsService).Settings().Cascade.MaxDepth
	svc.xpSvc = svc.Service(XP_SVC).(*XPService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.rewardSvc = svc.Service(REWARD_SVC).(*RewardService)
	return nil
}

// Submit runs jobs to completion before returning, unless called from inside
// a running job, in which case they are queued behind it.
func (svc *CascadeService) Submit(ctx context.Context, jobs ...Job) {
	if len(jobs) == 0 {
		return
	}

	if q, ok := ctx.Value(cascadeKey{}).(*cascadeQueue); ok {
		for _, j := range jobs {
			j.depth = q.current + 1
			q.jobs = append(q.jobs, j)
		}
		return
	}

	q := &cascadeQueue{}
	for _, j := range jobs {
		j.depth = 1
		q.jobs = append(q.jobs, j)
	}
	ctx = context.WithValue(ctx, cascadeKey{}, q)

	for len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]

		if job.depth > svc.maxDepth {
			cascadeDroppedTotal.WithLabelValues(string(job.Kind)).Inc()
			log.WithFields(log.Fields{
				"user_id": job.UserID,
				"job":     job.Kind,
				"depth":   job.depth,
			}).Warn("Cascade depth limit reached, dropping job")
			continue
		}

		q.current = job.depth
		svc.run(ctx, job)
	}
}

func (svc *CascadeService) run(ctx context.Context, job Job) {
	var err error

	switch job.Kind {
	case JobLevelUp:
		svc.xpSvc.handleLevelUp(ctx, job.UserID, job.Level)
	case JobXPGrant:
		_, err = svc.xpSvc.GrantXP(ctx, job.UserID, job.Source, job.Amount, job.Category)
	case JobBadgeAward:
		_, err = svc.badgeSvc.AwardBadge(ctx, job.UserID, job.BadgeID)
	case JobBadgeCheck:
		_, err = svc.badgeSvc.CheckAndAwardBadges(ctx, job.UserID, job.Metric, job.Value)
	case JobAchievementCheck:
		_, err = svc.badgeSvc.CheckAndAwardAchievements(ctx, job.UserID, job.Metrics)
	case JobRewardCheck:
		_, err = svc.rewardSvc.CheckAndUnlockRewards(ctx, job.UserID, job.Trigger)
	default:
		log.WithField("job", job.Kind).Error("Unknown cascade job")
	}

	if err != nil {
		log.WithFields(log.Fields{
			"user_id": job.UserID,
			"job":     job.Kind,
			"error":   err,
		}).Warn("Cascade job failed")
	}
}
