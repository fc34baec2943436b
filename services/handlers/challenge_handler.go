package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type ChallengeHandler struct {
	challengeService ChallengeServiceInterface
}

func NewChallengeHandler(challengeService ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// GetDaily godoc
// @Summary Today's challenges
// @Description Generates the day's set on first request and returns the same set afterwards.
// @Tags challenges
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ChallengeResponse}
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/challenges/daily [get]
func (h *ChallengeHandler) GetDaily(c *fiber.Ctx) error {
	challenges, err := h.challengeService.GenerateDailyChallenges(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", challenges)
}

// Claim godoc
// @Summary Claim a completed challenge
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param id path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ClaimResult}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/challenges/{id}/claim [post]
func (h *ChallengeHandler) Claim(c *fiber.Ctx) error {
	result, err := h.challengeService.ClaimChallengeRewards(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// Abandon godoc
// @Summary Abandon an active challenge
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param id path string true "Challenge ID"
// @Success 200 {object} shared.Response
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/challenges/{id}/abandon [post]
func (h *ChallengeHandler) Abandon(c *fiber.Ctx) error {
	if err := h.challengeService.AbandonChallenge(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}
