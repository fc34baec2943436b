package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type XPHandler struct {
	xpService XPServiceInterface
}

func NewXPHandler(xpService XPServiceInterface) *XPHandler {
	return &XPHandler{xpService: xpService}
}

// AwardXP godoc
// @Summary Award XP for an action
// @Description Applies the catalog amount for action_id. Daily caps and cooldowns return xp_amount 0 with a reason instead of an error.
// @Tags xp
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.AwardXPRequest true "Action"
// @Success 200 {object} shared.Response{data=dto.XPGain}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/xp/award [post]
func (h *XPHandler) AwardXP(c *fiber.Ctx) error {
	var req dto.AwardXPRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	gain, err := h.xpService.AwardXP(c.UserContext(), currentUser(c), req.ActionID, req.Metadata)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", gain)
}

// GetLevel godoc
// @Summary Current level and progress
// @Tags xp
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserLevel}
// @Router /api/v1/xp/level [get]
func (h *XPHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.xpService.GetUserLevel(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", level)
}

// GetHistory godoc
// @Summary XP transaction history
// @Tags xp
// @Produce json
// @Security Bearer
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} shared.Response{data=[]dto.XPTransactionResponse}
// @Router /api/v1/xp/history [get]
func (h *XPHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.xpService.GetHistory(c.UserContext(), currentUser(c), queryLimit(c, 50, 200))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", history)
}
