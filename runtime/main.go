package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/creator_api/middleware"
	"github.com/lac-hong-legacy/creator_api/services"
	"github.com/rs/zerolog/log"
)

// @title Creator API
// @version 1.0
// @description Gamification and onboarding conversations for content creators.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using environment")
	}

	ctx, err := context.NewCtx(
		&services.SettingsService{},
		&services.DatabaseService{},
		&services.RedisService{},
		&services.MonitoringService{},
		&services.NotificationService{},
		&services.RateLimitService{},
		&services.JWTService{},
		&services.GenAIService{},
		&services.KnowledgeService{},
		&services.ArchiveService{},

		&services.XPService{},
		&services.BadgeService{},
		&services.RewardService{},
		&services.CascadeService{},
		&services.ChallengeService{},
		&services.LeaderboardService{},
		&services.UserService{},
		&services.ActivityService{},
		&services.ConversationService{},
		&services.SchedulerService{},

		&middleware.AuthMiddleware{},
		&middleware.RateLimitMiddleware{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
