package services

import (
	"context"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type UserService struct {
	appContext.DefaultService

	dbSvc    *DatabaseService
	xpSvc    *XPService
	badgeSvc *BadgeService
	cascade  *CascadeService
	clock    shared.Clock
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.xpSvc = svc.Service(XP_SVC).(*XPService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.cascade = svc.Service(CASCADE_SVC).(*CascadeService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

// CreateUser registers a creator account created by the auth service. The
// signup order decides early adopter status.
func (svc *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	if _, err := svc.dbSvc.Users().GetUser(req.ID); err == nil {
		return nil, shared.NewConflictError(nil, "User already exists")
	}

	now := svc.clock.Now()
	user, err := svc.dbSvc.Users().CreateUser(&model.User{
		ID:          req.ID,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Platforms:   datatypes.NewJSONType([]string{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	if _, err := svc.dbSvc.Users().GetStats(user.ID, now); err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": user.ID, "signup_order": user.SignupOrder}).Info("User created")

	svc.cascade.Submit(ctx,
		Job{Kind: JobBadgeCheck, UserID: user.ID, Metric: catalog.MetricAccountCreated, Value: 1},
		Job{Kind: JobRewardCheck, UserID: user.ID, Trigger: catalog.SpecialTrigger(catalog.SpecialEarlyAdopter)},
	)

	return svc.GetProfile(ctx, user.ID)
}

// SaveOnboardingProfile stores the interview answers. The first save also
// pays the onboarding XP and fires the onboarding badge and reward triggers.
func (svc *UserService) SaveOnboardingProfile(ctx context.Context, userID string, profile dto.OnboardingProfile) error {
	user, err := svc.dbSvc.Users().GetUser(userID)
	if err != nil {
		return svc.dbSvc.HandleError(err)
	}

	now := svc.clock.Now()
	first := user.OnboardedAt == nil

	user.CreatorLevel = profile.CreatorLevel
	user.Platforms = datatypes.NewJSONType(profile.Platforms)
	user.PlatformNotes = profile.PlatformNotes
	user.ContentNiche = profile.ContentNiche
	user.Equipment = profile.Equipment
	user.Goals = profile.Goals
	user.Challenges = profile.Challenges
	if first {
		user.OnboardedAt = &now
	}
	if err := svc.dbSvc.Users().UpdateUser(user, now); err != nil {
		return svc.dbSvc.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "first": first, "completion": profileCompletion(user)}).Info("Onboarding profile saved")
	if !first {
		return nil
	}

	if _, err := svc.xpSvc.AwardXP(ctx, userID, catalog.ActionCompleteOnboarding, map[string]interface{}{"creator_level": profile.CreatorLevel}); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Failed to award onboarding XP")
	}

	jobs := []Job{
		{Kind: JobBadgeCheck, UserID: userID, Metric: catalog.MetricOnboardingCompleted, Value: 1},
		{Kind: JobRewardCheck, UserID: userID, Trigger: catalog.SpecialTrigger(catalog.SpecialOnboardingComplete)},
	}
	if metrics, err := svc.badgeSvc.MetricsSnapshot(userID); err == nil {
		jobs = append(jobs, Job{Kind: JobAchievementCheck, UserID: userID, Metrics: metrics})
	}
	svc.cascade.Submit(ctx, jobs...)
	return nil
}

func (svc *UserService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := svc.dbSvc.Users().GetUser(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	stats, err := svc.dbSvc.Users().GetStats(userID, svc.clock.Now())
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	features, err := svc.dbSvc.Rewards().ListFeatures(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	titleRows, err := svc.dbSvc.Badges().ListTitles(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	badgeCount, err := svc.dbSvc.Badges().CountBadges(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	achievementCount, err := svc.dbSvc.Badges().CountAchievements(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	titles := make([]string, 0, len(titleRows))
	for _, t := range titleRows {
		titles = append(titles, t.Title)
	}
	if features == nil {
		features = []string{}
	}

	resp := &dto.ProfileResponse{
		UserID:       user.ID,
		DisplayName:  user.DisplayName,
		SignupOrder:  user.SignupOrder,
		OnboardedAt:  user.OnboardedAt,
		Level:        *levelResponse(stats),
		StreakDays:   stats.StreakDays,
		Badges:       badgeCount,
		Achievements: achievementCount,
		Features:     features,
		Titles:       titles,
		CreatedAt:    user.CreatedAt,
	}
	if profileCompletion(user) > 0 {
		resp.Profile = &dto.OnboardingProfile{
			CreatorLevel:  user.CreatorLevel,
			Platforms:     user.Platforms.Data(),
			PlatformNotes: user.PlatformNotes,
			ContentNiche:  user.ContentNiche,
			Equipment:     user.Equipment,
			Goals:         user.Goals,
			Challenges:    user.Challenges,
		}
	}
	return resp, nil
}

// profileCompletion is the percentage of onboarding fields filled in.
func profileCompletion(user *model.User) int {
	fields := []bool{
		user.CreatorLevel != "",
		len(user.Platforms.Data()) > 0,
		user.ContentNiche != "",
		user.Equipment != "",
		user.Goals != "",
		user.Challenges != "",
	}
	filled := 0
	for _, f := range fields {
		if f {
			filled++
		}
	}
	return filled * 100 / len(fields)
}
