package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type LeaderboardHandler struct {
	leaderboardService LeaderboardServiceInterface
}

func NewLeaderboardHandler(leaderboardService LeaderboardServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary Leaderboard
// @Description Ranks users by xp, badges, achievements, content or engagement over a timeframe.
// @Tags leaderboard
// @Produce json
// @Param type query string false "Board type" Enums(xp, badges, achievements, content, engagement)
// @Param timeframe query string false "Window" Enums(daily, weekly, monthly, all_time)
// @Param limit query int false "Entries"
// @Success 200 {object} shared.Response{data=dto.Leaderboard}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	var req dto.LeaderboardRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	board, err := h.leaderboardService.GetLeaderboard(c.UserContext(), req.Type, req.Timeframe, req.Limit, currentUser(c))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", board)
}
