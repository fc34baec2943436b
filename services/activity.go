package services

import (
	"context"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

type engagementKind struct {
	action string
	metric string
}

var engagementKinds = map[string]engagementKind{
	model.EngagementAIInteraction: {action: catalog.ActionAIChat, metric: catalog.MetricAIInteractions},
	model.EngagementHelp:          {action: catalog.ActionHelpCommunity, metric: catalog.MetricHelpGiven},
	model.EngagementShare:         {action: catalog.ActionShareContent, metric: catalog.MetricContentShared},
}

// ActivityService is the direct action-hook path: it records the activity
// row, then runs XP, badge, achievement and challenge updates. Gamification
// failures are logged and never fail the action itself.
type ActivityService struct {
	appContext.DefaultService

	dbSvc        *DatabaseService
	xpSvc        *XPService
	badgeSvc     *BadgeService
	challengeSvc *ChallengeService
	clock        shared.Clock
}

const ACTIVITY_SVC = "activity_svc"

func (svc ActivityService) Id() string {
	return ACTIVITY_SVC
}

func (svc *ActivityService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ActivityService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.xpSvc = svc.Service(XP_SVC).(*XPService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

func (svc *ActivityService) PublishContent(ctx context.Context, userID string, req dto.PublishContentRequest) (*dto.ActivityResult, error) {
	now := svc.clock.Now()
	post := &model.ContentPost{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Platform:    strings.ToLower(req.Platform),
		Status:      model.PostStatusPublished,
		PublishedAt: &now,
		CreatedAt:   now,
	}
	if err := svc.dbSvc.Activity().CreatePost(post); err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	return svc.after(ctx, userID, post.ID, catalog.ActionPublishContent,
		map[string]interface{}{"post_id": post.ID, "platform": post.Platform},
		catalog.MetricContentPublished,
		svc.dbSvc.Activity().CountPublished), nil
}

// CompleteTask completes an existing task, or records a new one as done.
func (svc *ActivityService) CompleteTask(ctx context.Context, userID string, req dto.CompleteTaskRequest) (*dto.ActivityResult, error) {
	now := svc.clock.Now()
	repo := svc.dbSvc.Activity()

	taskID := req.TaskID
	if taskID != "" {
		if _, err := repo.GetTask(userID, taskID); err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		changed, err := repo.CompleteTask(userID, taskID, now)
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		if !changed {
			return nil, shared.NewConflictError(nil, "Task already completed")
		}
	} else {
		task := &model.Task{
			UserID:      userID,
			Title:       strings.TrimSpace(req.Title),
			Category:    req.Category,
			CompletedAt: &now,
			CreatedAt:   now,
		}
		if err := repo.CreateTask(task); err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		taskID = task.ID
	}

	return svc.after(ctx, userID, taskID, catalog.ActionCompleteTask,
		map[string]interface{}{"task_id": taskID},
		catalog.MetricTasksCompleted,
		repo.CountCompletedTasks), nil
}

func (svc *ActivityService) RecordEngagement(ctx context.Context, userID, kind string) (*dto.ActivityResult, error) {
	ek, ok := engagementKinds[kind]
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Unknown engagement kind")
	}

	event := &model.EngagementEvent{UserID: userID, Kind: kind, CreatedAt: svc.clock.Now()}
	if err := svc.dbSvc.Activity().CreateEngagement(event); err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	count := func(userID string) (int64, error) {
		return svc.dbSvc.Activity().CountEngagementSince(userID, kind, time.Time{})
	}
	return svc.after(ctx, userID, event.ID, ek.action, map[string]interface{}{"kind": kind}, ek.metric, count), nil
}

// RecordLogin pays the daily check-in and maintains the streak.
func (svc *ActivityService) RecordLogin(ctx context.Context, userID string) (*dto.StreakResponse, error) {
	gain, err := svc.xpSvc.AwardXP(ctx, userID, catalog.ActionDailyLogin, nil)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Failed to award login XP")
	}

	streak, err := svc.xpSvc.RecordDailyActivity(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak.XP = gain

	svc.updateChallenges(ctx, userID, catalog.ActionDailyLogin)
	return streak, nil
}

// after runs the gamification follow-ups of one recorded action and reports
// everything that became newly earned, including cascade results.
func (svc *ActivityService) after(ctx context.Context, userID, resourceID, actionID string, metadata map[string]interface{}, metric string, count func(string) (int64, error)) *dto.ActivityResult {
	before := svc.earned(userID)
	result := &dto.ActivityResult{ResourceID: resourceID}

	gain, err := svc.xpSvc.AwardXP(ctx, userID, actionID, metadata)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "action": actionID, "error": err}).Warn("Failed to award XP")
	}
	result.XP = gain

	if _, err := svc.xpSvc.RecordDailyActivity(ctx, userID); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Failed to record daily activity")
	}

	if n, err := count(userID); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "metric": metric, "error": err}).Warn("Failed to count activity")
	} else if _, err := svc.badgeSvc.CheckAndAwardBadges(ctx, userID, metric, float64(n)); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "metric": metric, "error": err}).Warn("Badge check failed")
	}

	if metrics, err := svc.badgeSvc.MetricsSnapshot(userID); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Failed to collect metrics")
	} else if _, err := svc.badgeSvc.CheckAndAwardAchievements(ctx, userID, metrics); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Achievement check failed")
	}

	result.Challenges = svc.updateChallenges(ctx, userID, actionID)
	svc.diff(before, svc.earned(userID), result)
	return result
}

func (svc *ActivityService) updateChallenges(ctx context.Context, userID, actionID string) []dto.ChallengeResponse {
	completed, err := svc.challengeSvc.UpdateChallengeProgress(ctx, userID, actionID, 1)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "action": actionID, "error": err}).Warn("Challenge progress update failed")
	}
	return completed
}

type earnedSets struct {
	badges       map[string]bool
	achievements map[string]bool
	rewards      map[string]bool
}

func (svc *ActivityService) earned(userID string) earnedSets {
	var out earnedSets
	var err error
	if out.badges, err = svc.dbSvc.Badges().EarnedBadgeIDs(userID); err != nil {
		out.badges = map[string]bool{}
	}
	if out.achievements, err = svc.dbSvc.Badges().EarnedAchievementIDs(userID); err != nil {
		out.achievements = map[string]bool{}
	}
	if out.rewards, err = svc.dbSvc.Rewards().UnlockedRewardIDs(userID); err != nil {
		out.rewards = map[string]bool{}
	}
	return out
}

func (svc *ActivityService) diff(before, after earnedSets, result *dto.ActivityResult) {
	for id := range after.badges {
		if before.badges[id] {
			continue
		}
		if b, ok := catalog.LookupBadge(id); ok {
			result.Badges = append(result.Badges, badgeResponse(b))
		}
	}
	for id := range after.achievements {
		if before.achievements[id] {
			continue
		}
		if a, ok := catalog.LookupAchievement(id); ok {
			result.Achievements = append(result.Achievements, achievementResponse(a))
		}
	}
	for id := range after.rewards {
		if before.rewards[id] {
			continue
		}
		if r, ok := catalog.LookupReward(id); ok {
			result.Rewards = append(result.Rewards, rewardResponse(r))
		}
	}
}
