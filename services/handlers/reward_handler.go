package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type RewardHandler struct {
	rewardService RewardServiceInterface
}

func NewRewardHandler(rewardService RewardServiceInterface) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// ListRewards godoc
// @Summary List rewards
// @Tags rewards
// @Produce json
// @Security Bearer
// @Param q query string false "Name filter"
// @Success 200 {object} shared.Response{data=[]dto.RewardResponse}
// @Router /api/v1/rewards [get]
func (h *RewardHandler) ListRewards(c *fiber.Ctx) error {
	rewards, err := h.rewardService.ListRewards(c.UserContext(), currentUser(c), c.Query("q"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", rewards)
}

// ClaimReward godoc
// @Summary Claim an unlocked reward
// @Description Claiming twice returns the existing claim.
// @Tags rewards
// @Produce json
// @Security Bearer
// @Param id path string true "Reward ID"
// @Success 200 {object} shared.Response{data=dto.RewardResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/rewards/{id}/claim [post]
func (h *RewardHandler) ClaimReward(c *fiber.Ctx) error {
	reward, err := h.rewardService.ClaimReward(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", reward)
}

// QuoteDiscount godoc
// @Summary Price a plan with the best active discount
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.DiscountRequest true "Plan and amount"
// @Success 200 {object} shared.Response{data=dto.DiscountResponse}
// @Router /api/v1/rewards/discount [post]
func (h *RewardHandler) QuoteDiscount(c *fiber.Ctx) error {
	var req dto.DiscountRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	quote, err := h.rewardService.ApplyActiveDiscounts(c.UserContext(), currentUser(c), req.Plan, req.AmountCents)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quote)
}

// ContentAccess godoc
// @Summary Check access to reward-gated content
// @Tags rewards
// @Produce json
// @Security Bearer
// @Param id query string true "Content ID"
// @Success 200 {object} shared.Response{data=dto.ContentAccessResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/rewards/content [get]
func (h *RewardHandler) ContentAccess(c *fiber.Ctx) error {
	access, err := h.rewardService.HasContentAccess(c.UserContext(), currentUser(c), c.Query("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", access)
}
