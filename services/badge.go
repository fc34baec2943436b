package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	nightOwlWindowDays = 30
	nightOwlTasks      = 50
	nightOwlEndHour    = 5
)

// achievementFlagMetrics maps achievements to the flag metric their companion
// badge listens on.
var achievementFlagMetrics = map[string]string{
	catalog.AchievementConsistencyKing: catalog.MetricConsistencyKing,
	catalog.AchievementMultiPlatform:   catalog.MetricPlatformPioneer,
}

// BadgeService evaluates the badge and achievement catalogs for a user.
type BadgeService struct {
	appContext.DefaultService

	dbSvc    *DatabaseService
	cascade  *CascadeService
	notifier Notifier
	clock    shared.Clock
}

const BADGE_SVC = "badge_svc"

func (svc BadgeService) Id() string {
	return BADGE_SVC
}

func (svc *BadgeService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *BadgeService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.cascade = svc.Service(CASCADE_SVC).(*CascadeService)
	svc.notifier = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

// CheckAndAwardBadges evaluates only the badges listening on metric. A badge
// that fails to persist is logged and skipped.
func (svc *BadgeService) CheckAndAwardBadges(ctx context.Context, userID, metric string, value float64) ([]catalog.Badge, error) {
	earned, err := svc.dbSvc.Badges().EarnedBadgeIDs(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	var facts *catalog.Facts
	var awarded []catalog.Badge

	for _, badge := range catalog.Badges() {
		if earned[badge.ID] || badge.Requirement.Metric() != metric {
			continue
		}

		if facts == nil {
			facts = svc.facts(userID)
		}
		if !badge.Requirement.Met(value, *facts) {
			continue
		}

		ok, err := svc.award(ctx, userID, badge, map[string]interface{}{"metric": metric, "value": value})
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "badge_id": badge.ID, "error": err}).Error("Failed to award badge")
			continue
		}
		if ok {
			awarded = append(awarded, badge)
		}
	}

	return awarded, nil
}

// AwardBadge awards a badge outright, as achievement rewards do. It reports
// false when the badge is unknown or already earned.
func (svc *BadgeService) AwardBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	badge, ok := catalog.LookupBadge(badgeID)
	if !ok {
		log.WithFields(log.Fields{"user_id": userID, "badge_id": badgeID}).Warn("Unknown badge")
		return false, nil
	}
	return svc.award(ctx, userID, badge, map[string]interface{}{"source": "grant"})
}

func (svc *BadgeService) award(ctx context.Context, userID string, badge catalog.Badge, metadata map[string]interface{}) (bool, error) {
	inserted, err := svc.dbSvc.Badges().CreateUserBadge(&model.UserBadge{
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: svc.clock.Now(),
		Metadata: metadata,
	})
	if err != nil || !inserted {
		return false, err
	}

	awardsTotal.WithLabelValues("badge").Inc()
	log.WithFields(log.Fields{"user_id": userID, "badge_id": badge.ID}).Info("Badge awarded")

	svc.notifier.Notify(ctx, userID, shared.NotificationBadge,
		fmt.Sprintf("%s %s unlocked", badge.Icon, badge.Name),
		badge.Description,
		map[string]interface{}{"badge_id": badge.ID, "tier": badge.Tier, "xp": badge.XPReward})

	svc.cascade.Submit(ctx,
		Job{Kind: JobXPGrant, UserID: userID, Amount: badge.XPReward, Source: "badge:" + badge.ID, Category: badge.Category},
		Job{Kind: JobRewardCheck, UserID: userID, Trigger: catalog.BadgeTrigger(badge.ID)},
	)
	return true, nil
}

func (svc *BadgeService) facts(userID string) *catalog.Facts {
	facts := &catalog.Facts{}
	user, err := svc.dbSvc.Users().GetUser(userID)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Debug("No profile for badge facts")
		return facts
	}
	facts.SignupOrder = user.SignupOrder
	return facts
}

// CheckAndAwardAchievements evaluates every unearned achievement. Snapshot
// requirements read metrics; windowed and special requirements query the
// user's history.
func (svc *BadgeService) CheckAndAwardAchievements(ctx context.Context, userID string, metrics map[string]float64) ([]catalog.Achievement, error) {
	earned, err := svc.dbSvc.Badges().EarnedAchievementIDs(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	in := catalog.Inputs{
		Metrics: metrics,
		Now:     svc.clock.Now(),
		Source:  &userAggregates{dbSvc: svc.dbSvc, userID: userID, loc: svc.clock.Location()},
	}

	var awarded []catalog.Achievement
	for _, a := range catalog.Achievements() {
		if earned[a.ID] {
			continue
		}

		ok, err := a.Requirement.Evaluate(in)
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "achievement_id": a.ID, "error": err}).Warn("Failed to evaluate achievement")
			continue
		}
		if !ok {
			continue
		}

		inserted, err := svc.dbSvc.Badges().CreateUserAchievement(&model.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			Kind:          model.AchievementKindCatalog,
			Points:        a.Points,
			EarnedAt:      in.Now,
		})
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "achievement_id": a.ID, "error": err}).Error("Failed to award achievement")
			continue
		}
		if !inserted {
			continue
		}

		awardsTotal.WithLabelValues("achievement").Inc()
		log.WithFields(log.Fields{"user_id": userID, "achievement_id": a.ID}).Info("Achievement awarded")

		jobs := svc.grantRewards(userID, "achievement:"+a.ID, a.Category, a.Rewards, in.Now)
		if metric, ok := achievementFlagMetrics[a.ID]; ok {
			jobs = append(jobs, Job{Kind: JobBadgeCheck, UserID: userID, Metric: metric, Value: 1})
		}
		jobs = append(jobs, Job{Kind: JobRewardCheck, UserID: userID, Trigger: catalog.AchievementTrigger(a.ID)})

		if !a.Hidden {
			svc.notifier.Notify(ctx, userID, shared.NotificationAchievement,
				fmt.Sprintf("Achievement unlocked: %s", a.Name),
				a.Description,
				map[string]interface{}{"achievement_id": a.ID, "points": a.Points})
		}

		svc.cascade.Submit(ctx, jobs...)
		awarded = append(awarded, a)
	}

	return awarded, nil
}

// grantRewards persists title, feature and cosmetic grants directly and
// returns cascade jobs for xp and badge grants.
func (svc *BadgeService) grantRewards(userID, source string, category catalog.Category, grants []catalog.Grant, now time.Time) []Job {
	var jobs []Job
	for _, g := range grants {
		var err error
		switch g.Kind {
		case catalog.GrantXP:
			jobs = append(jobs, Job{Kind: JobXPGrant, UserID: userID, Amount: g.Amount, Source: source, Category: category})
		case catalog.GrantBadge:
			jobs = append(jobs, Job{Kind: JobBadgeAward, UserID: userID, BadgeID: g.Ref})
		case catalog.GrantTitle:
			_, err = svc.dbSvc.Badges().CreateTitle(&model.UserTitle{UserID: userID, Title: g.Ref, Source: source, CreatedAt: now})
		case catalog.GrantFeature:
			_, err = svc.dbSvc.Rewards().CreateFeature(&model.UnlockedFeature{UserID: userID, Feature: g.Ref, Source: source, CreatedAt: now})
		case catalog.GrantCosmetic:
			_, err = svc.dbSvc.Rewards().CreateCosmetic(&model.UserCosmetic{UserID: userID, Asset: g.Ref, CreatedAt: now})
		default:
			log.WithFields(log.Fields{"user_id": userID, "grant": g.Kind}).Warn("Unknown grant kind")
		}
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "source": source, "grant": g.Kind, "ref": g.Ref, "error": err}).Error("Failed to persist grant")
		}
	}
	return jobs
}

// MetricsSnapshot collects the current lifetime metrics used by milestone and
// perfect achievements.
func (svc *BadgeService) MetricsSnapshot(userID string) (map[string]float64, error) {
	stats, err := svc.dbSvc.Users().GetStats(userID, svc.clock.Now())
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	agg := &userAggregates{dbSvc: svc.dbSvc, userID: userID, loc: svc.clock.Location()}
	metrics := map[string]float64{
		catalog.MetricTotalXP:    float64(stats.TotalXP),
		catalog.MetricLevel:      float64(catalog.LevelFor(stats.TotalXP).Number),
		catalog.MetricStreakDays: float64(stats.StreakDays),
	}
	for _, m := range []string{
		catalog.MetricContentPublished,
		catalog.MetricTasksCompleted,
		catalog.MetricAIInteractions,
		catalog.MetricHelpGiven,
		catalog.MetricContentShared,
	} {
		v, err := agg.Aggregate(m, time.Time{})
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		metrics[m] = v
	}

	if user, err := svc.dbSvc.Users().GetUser(userID); err == nil {
		metrics[catalog.MetricProfileCompletion] = float64(profileCompletion(user))
		if user.OnboardedAt != nil {
			metrics[catalog.MetricOnboardingCompleted] = 1
		}
	}
	return metrics, nil
}

func (svc *BadgeService) ListBadges(ctx context.Context, userID, query string) ([]dto.BadgeResponse, error) {
	earnedAt := map[string]time.Time{}
	if userID != "" {
		rows, err := svc.dbSvc.Badges().ListUserBadges(userID)
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		for _, r := range rows {
			earnedAt[r.BadgeID] = r.EarnedAt
		}
	}

	items := catalog.FuzzyFilter(catalog.Badges(), query, func(b catalog.Badge) string { return b.Name })
	out := make([]dto.BadgeResponse, 0, len(items))
	for _, b := range items {
		resp := badgeResponse(b)
		if at, ok := earnedAt[b.ID]; ok {
			resp.Earned = true
			resp.EarnedAt = &at
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListAchievements never lists a hidden achievement the user has not earned.
func (svc *BadgeService) ListAchievements(ctx context.Context, userID, query string) ([]dto.AchievementResponse, error) {
	earnedAt := map[string]time.Time{}
	if userID != "" {
		rows, err := svc.dbSvc.Badges().ListUserAchievements(userID, model.AchievementKindCatalog)
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		for _, r := range rows {
			earnedAt[r.AchievementID] = r.EarnedAt
		}
	}

	items := catalog.FuzzyFilter(catalog.Achievements(), query, func(a catalog.Achievement) string { return a.Name })
	out := make([]dto.AchievementResponse, 0, len(items))
	for _, a := range items {
		at, earned := earnedAt[a.ID]
		if a.Hidden && !earned {
			continue
		}
		resp := achievementResponse(a)
		if earned {
			resp.Earned = true
			resp.EarnedAt = &at
		}
		out = append(out, resp)
	}
	return out, nil
}

func badgeResponse(b catalog.Badge) dto.BadgeResponse {
	return dto.BadgeResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Category:    string(b.Category),
		Tier:        string(b.Tier),
		Rarity:      string(b.Rarity),
		XPReward:    b.XPReward,
		Requirement: string(b.Requirement.Kind()),
		Metric:      b.Requirement.Metric(),
		Target:      b.Requirement.Target(),
	}
}

func achievementResponse(a catalog.Achievement) dto.AchievementResponse {
	grants := make([]dto.GrantResponse, 0, len(a.Rewards))
	for _, g := range a.Rewards {
		grants = append(grants, dto.GrantResponse{Type: string(g.Kind), Amount: g.Amount, Ref: g.Ref})
	}
	return dto.AchievementResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Category:    string(a.Category),
		Points:      a.Points,
		Requirement: string(a.Requirement.Kind()),
		Rewards:     grants,
		Hidden:      a.Hidden,
	}
}

// userAggregates answers windowed metric queries for one user. A zero since
// means all time.
type userAggregates struct {
	dbSvc  *DatabaseService
	userID string
	loc    *time.Location
}

func (a *userAggregates) Aggregate(metric string, since time.Time) (float64, error) {
	activity := a.dbSvc.Activity()

	var n int64
	var err error
	switch metric {
	case catalog.MetricContentPublished:
		if since.IsZero() {
			n, err = activity.CountPublished(a.userID)
		} else {
			var times []time.Time
			times, err = activity.PublishTimesSince(a.userID, since)
			n = int64(len(times))
		}
	case catalog.MetricDistinctPublishDays:
		var times []time.Time
		times, err = activity.PublishTimesSince(a.userID, since)
		n = int64(distinctDays(times, a.loc))
	case catalog.MetricDistinctPlatforms:
		n, err = activity.DistinctPlatformsSince(a.userID, since)
	case catalog.MetricTasksCompleted:
		n, err = activity.CountCompletedTasksSince(a.userID, since)
	case catalog.MetricXPEarned:
		n, err = a.dbSvc.XP().SumSince(a.userID, since)
	case catalog.MetricHelpGiven:
		n, err = activity.CountEngagementSince(a.userID, model.EngagementHelp, since)
	case catalog.MetricAIInteractions:
		n, err = activity.CountEngagementSince(a.userID, model.EngagementAIInteraction, since)
	case catalog.MetricContentShared:
		n, err = activity.CountEngagementSince(a.userID, model.EngagementShare, since)
	default:
		log.WithField("metric", metric).Debug("No aggregate for metric")
	}
	return float64(n), err
}

func (a *userAggregates) Special(key string, now time.Time) (bool, error) {
	switch key {
	case catalog.SpecialNightOwl:
		times, err := a.dbSvc.Activity().TaskCompletionTimesSince(a.userID, now.AddDate(0, 0, -nightOwlWindowDays))
		if err != nil {
			return false, err
		}
		count := 0
		for _, t := range times {
			if t.In(a.loc).Hour() < nightOwlEndHour {
				count++
			}
		}
		return count >= nightOwlTasks, nil
	}
	return false, nil
}

func distinctDays(times []time.Time, loc *time.Location) int {
	days := make(map[string]struct{}, len(times))
	for _, t := range times {
		days[shared.DayKey(t.In(loc))] = struct{}{}
	}
	return len(days)
}

// CheckBadges is the API form of CheckAndAwardBadges.
func (svc *BadgeService) CheckBadges(ctx context.Context, userID string, req dto.CheckBadgesRequest) ([]dto.BadgeResponse, error) {
	awarded, err := svc.CheckAndAwardBadges(ctx, userID, req.Metric, req.Value)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BadgeResponse, 0, len(awarded))
	for _, b := range awarded {
		resp := badgeResponse(b)
		resp.Earned = true
		out = append(out, resp)
	}
	return out, nil
}

// CheckAchievements evaluates achievements with the supplied metrics. Values
// the server tracks itself override whatever the client sent.
func (svc *BadgeService) CheckAchievements(ctx context.Context, userID string, req dto.CheckAchievementsRequest) ([]dto.AchievementResponse, error) {
	snapshot, err := svc.MetricsSnapshot(userID)
	if err != nil {
		return nil, err
	}
	metrics := make(map[string]float64, len(req.Metrics)+len(snapshot))
	for k, v := range req.Metrics {
		metrics[k] = v
	}
	for k, v := range snapshot {
		metrics[k] = v
	}

	awarded, err := svc.CheckAndAwardAchievements(ctx, userID, metrics)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AchievementResponse, 0, len(awarded))
	for _, a := range awarded {
		resp := achievementResponse(a)
		resp.Earned = true
		out = append(out, resp)
	}
	return out, nil
}
