package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/lac-hong-legacy/creator_api/docs"
	"github.com/lac-hong-legacy/creator_api/services/handlers"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

// Middleware services live in their own package, which imports this one.
// They are resolved by id and used through these interfaces.
const (
	AUTH_MIDDLEWARE_SVC       = "auth"
	RATE_LIMIT_MIDDLEWARE_SVC = "rate_limit"
)

type authMiddleware interface {
	RequiredAuth() fiber.Handler
	OptionalAuth() fiber.Handler
}

type rateLimitMiddleware interface {
	RateLimit(bucket string) fiber.Handler
	IPRateLimit() fiber.Handler
}

type HttpService struct {
	context.DefaultService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.app = svc.newApp()

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// App builds the routed application without listening, for tests.
func (svc *HttpService) App() *fiber.App {
	if svc.app == nil {
		svc.app = svc.newApp()
	}
	return svc.app
}

func (svc *HttpService) newApp() *fiber.App {
	auth := svc.Service(AUTH_MIDDLEWARE_SVC).(authMiddleware)
	limiter := svc.Service(RATE_LIMIT_MIDDLEWARE_SVC).(rateLimitMiddleware)

	xpHandler := handlers.NewXPHandler(svc.Service(XP_SVC).(*XPService))
	badgeHandler := handlers.NewBadgeHandler(svc.Service(BADGE_SVC).(*BadgeService))
	rewardHandler := handlers.NewRewardHandler(svc.Service(REWARD_SVC).(*RewardService))
	challengeHandler := handlers.NewChallengeHandler(svc.Service(CHALLENGE_SVC).(*ChallengeService))
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.Service(LEADERBOARD_SVC).(*LeaderboardService))
	conversationHandler := handlers.NewConversationHandler(svc.Service(CONVERSATION_SVC).(*ConversationService))
	activityHandler := handlers.NewActivityHandler(svc.Service(ACTIVITY_SVC).(*ActivityService))
	notificationHandler := handlers.NewNotificationHandler(svc.Service(NOTIFICATION_SVC).(*NotificationService))
	userHandler := handlers.NewUserHandler(svc.Service(USER_SVC).(*UserService))

	app := fiber.New(fiber.Config{
		AppName:               SERVICE_NAME,
		DisableStartupMessage: true,
		ErrorHandler:          shared.ErrorHandler,
		JSONEncoder:           shared.Marshal,
		JSONDecoder:           shared.Unmarshal,
	})

	docs.SwaggerInfo.BasePath = ""
	app.Use(recover.New())
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: envOr("CORS_ALLOW_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if svc.Service(MONITORING_SVC) != nil {
		app.Use(MonitoringMiddleware(svc.Service(MONITORING_SVC).(*MonitoringService)))
	}

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1", limiter.IPRateLimit())
	v1.Get("/ping", svc.ping)

	users := v1.Group("/users", auth.RequiredAuth())
	users.Post("/", userHandler.CreateUser)
	users.Get("/me", userHandler.GetProfile)

	xp := v1.Group("/xp", auth.RequiredAuth())
	xp.Post("/award", limiter.RateLimit(BucketActivityAPI), xpHandler.AwardXP)
	xp.Get("/level", xpHandler.GetLevel)
	xp.Get("/history", xpHandler.GetHistory)

	v1.Get("/badges", auth.OptionalAuth(), badgeHandler.ListBadges)
	v1.Post("/badges/check", auth.RequiredAuth(), badgeHandler.CheckBadges)
	v1.Get("/achievements", auth.OptionalAuth(), badgeHandler.ListAchievements)
	v1.Post("/achievements/check", auth.RequiredAuth(), badgeHandler.CheckAchievements)

	rewards := v1.Group("/rewards", auth.RequiredAuth())
	rewards.Get("/", rewardHandler.ListRewards)
	rewards.Get("/content", rewardHandler.ContentAccess)
	rewards.Post("/discount", rewardHandler.QuoteDiscount)
	rewards.Post("/:id/claim", rewardHandler.ClaimReward)

	challenges := v1.Group("/challenges", auth.RequiredAuth())
	challenges.Get("/daily", challengeHandler.GetDaily)
	challenges.Post("/:id/claim", challengeHandler.Claim)
	challenges.Post("/:id/abandon", challengeHandler.Abandon)

	v1.Get("/leaderboard", auth.OptionalAuth(), leaderboardHandler.GetLeaderboard)

	conversations := v1.Group("/conversations")
	conversations.Post("/messages", auth.OptionalAuth(), conversationHandler.SendMessage)
	conversations.Get("/", auth.RequiredAuth(), conversationHandler.ListConversations)
	conversations.Get("/:id", auth.OptionalAuth(), conversationHandler.GetConversation)
	conversations.Delete("/:id", auth.RequiredAuth(), conversationHandler.DeleteConversation)
	conversations.Post("/:id/attach", auth.RequiredAuth(), conversationHandler.AttachConversation)
	conversations.Post("/:id/export", auth.RequiredAuth(), conversationHandler.ExportConversation)

	activity := v1.Group("/activity", auth.RequiredAuth(), limiter.RateLimit(BucketActivityAPI))
	activity.Post("/content", activityHandler.PublishContent)
	activity.Post("/tasks", activityHandler.CompleteTask)
	activity.Post("/engagement", activityHandler.RecordEngagement)
	activity.Post("/login", activityHandler.RecordLogin)

	notifications := v1.Group("/notifications", auth.RequiredAuth())
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Post("/read", notificationHandler.MarkRead)

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Page not found")
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}
