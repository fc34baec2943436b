package seeders

import (
	"errors"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserSeeder creates demo creators at different stages of onboarding.
type UserSeeder struct {
	dbSvc *services.DatabaseService
}

func NewUserSeeder(dbSvc *services.DatabaseService) *UserSeeder {
	return &UserSeeder{dbSvc: dbSvc}
}

func (s *UserSeeder) SeedUsers() error {
	for _, user := range demoUsers() {
		_, err := s.dbSvc.Users().GetUser(user.ID)
		if err == nil {
			log.WithField("user_id", user.ID).Info("User already exists, skipping")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if _, err := s.dbSvc.Users().CreateUser(&user); err != nil {
			return err
		}
		log.WithFields(log.Fields{"user_id": user.ID, "name": user.DisplayName}).Info("Created user")
	}
	return nil
}

func demoUsers() []model.User {
	now := time.Now()
	onboarded := now.Add(-72 * time.Hour)

	return []model.User{
		{
			ID:          "demo-beginner",
			DisplayName: "Nova Starts",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:           "demo-streamer",
			DisplayName:  "Kai Streams",
			CreatorLevel: "intermediate",
			Platforms:    datatypes.NewJSONType([]string{"twitch", "youtube"}),
			ContentNiche: "Retro game speedruns",
			Equipment:    "Capture card, condenser mic, one camera",
			Goals:        "Stream four nights a week and reach affiliate",
			Challenges:   "Editing highlights takes too long",
			OnboardedAt:  &onboarded,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "demo-pro",
			DisplayName:  "Mira Makes",
			CreatorLevel: "advanced",
			Platforms:    datatypes.NewJSONType([]string{"youtube", "instagram", "tiktok"}),
			ContentNiche: "Woodworking tutorials",
			Equipment:    "Two cameras, lav mics, lighting kit",
			Goals:        "Launch a paid course",
			Challenges:   "Keeping a consistent upload schedule",
			OnboardedAt:  &onboarded,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
