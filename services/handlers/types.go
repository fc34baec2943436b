package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type XPServiceInterface interface {
	AwardXP(ctx context.Context, userID, actionID string, metadata map[string]interface{}) (*dto.XPGain, error)
	GetUserLevel(ctx context.Context, userID string) (*dto.UserLevel, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]dto.XPTransactionResponse, error)
}

type BadgeServiceInterface interface {
	ListBadges(ctx context.Context, userID, query string) ([]dto.BadgeResponse, error)
	ListAchievements(ctx context.Context, userID, query string) ([]dto.AchievementResponse, error)
	CheckBadges(ctx context.Context, userID string, req dto.CheckBadgesRequest) ([]dto.BadgeResponse, error)
	CheckAchievements(ctx context.Context, userID string, req dto.CheckAchievementsRequest) ([]dto.AchievementResponse, error)
}

type RewardServiceInterface interface {
	ListRewards(ctx context.Context, userID, query string) ([]dto.RewardResponse, error)
	ClaimReward(ctx context.Context, userID, rewardID string) (*dto.RewardResponse, error)
	ApplyActiveDiscounts(ctx context.Context, userID, plan string, amountCents int64) (*dto.DiscountResponse, error)
	HasContentAccess(ctx context.Context, userID, contentID string) (*dto.ContentAccessResponse, error)
}

type ChallengeServiceInterface interface {
	GenerateDailyChallenges(ctx context.Context, userID string) ([]dto.ChallengeResponse, error)
	ClaimChallengeRewards(ctx context.Context, userID, challengeID string) (*dto.ClaimResult, error)
	AbandonChallenge(ctx context.Context, userID, challengeID string) error
}

type LeaderboardServiceInterface interface {
	GetLeaderboard(ctx context.Context, boardType, timeframe string, limit int, userID string) (*dto.Leaderboard, error)
}

type ConversationServiceInterface interface {
	ProcessMessage(ctx context.Context, req dto.ProcessMessageRequest, onChunk func(string)) (*dto.ConversationTurn, error)
	GetConversation(ctx context.Context, userID, id string) (*dto.ConversationResponse, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]dto.ConversationSummary, error)
	DeleteConversation(ctx context.Context, userID, id string) error
	AttachConversation(ctx context.Context, userID, id string) (*dto.ConversationResponse, error)
	ExportConversation(ctx context.Context, userID, id string) (*dto.ExportResponse, error)
}

type ActivityServiceInterface interface {
	PublishContent(ctx context.Context, userID string, req dto.PublishContentRequest) (*dto.ActivityResult, error)
	CompleteTask(ctx context.Context, userID string, req dto.CompleteTaskRequest) (*dto.ActivityResult, error)
	RecordEngagement(ctx context.Context, userID, kind string) (*dto.ActivityResult, error)
	RecordLogin(ctx context.Context, userID string) (*dto.StreakResponse, error)
}

type NotificationServiceInterface interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

// currentUser returns the authenticated user id, empty for anonymous requests.
func currentUser(c *fiber.Ctx) string {
	id, _ := c.Locals(shared.UserID).(string)
	return id
}

// parseBody decodes and validates a request body. The returned bool is false
// when a response has already been written.
func parseBody(c *fiber.Ctx, req dto.Validator) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, shared.NewBadRequestError(err, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}
	return true, nil
}

func queryLimit(c *fiber.Ctx, fallback, max int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
