package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type BadgeHandler struct {
	badgeService BadgeServiceInterface
}

func NewBadgeHandler(badgeService BadgeServiceInterface) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// ListBadges godoc
// @Summary List badges
// @Description Lists the badge catalog with the caller's earned state. q fuzzy-matches badge names.
// @Tags badges
// @Produce json
// @Param q query string false "Name filter"
// @Success 200 {object} shared.Response{data=[]dto.BadgeResponse}
// @Router /api/v1/badges [get]
func (h *BadgeHandler) ListBadges(c *fiber.Ctx) error {
	badges, err := h.badgeService.ListBadges(c.UserContext(), currentUser(c), c.Query("q"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", badges)
}

// CheckBadges godoc
// @Summary Check badge thresholds for a metric
// @Tags badges
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CheckBadgesRequest true "Metric value"
// @Success 200 {object} shared.Response{data=[]dto.BadgeResponse}
// @Router /api/v1/badges/check [post]
func (h *BadgeHandler) CheckBadges(c *fiber.Ctx) error {
	var req dto.CheckBadgesRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	earned, err := h.badgeService.CheckBadges(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", earned)
}

// ListAchievements godoc
// @Summary List achievements
// @Description Hidden achievements are masked until earned.
// @Tags badges
// @Produce json
// @Param q query string false "Name filter"
// @Success 200 {object} shared.Response{data=[]dto.AchievementResponse}
// @Router /api/v1/achievements [get]
func (h *BadgeHandler) ListAchievements(c *fiber.Ctx) error {
	achievements, err := h.badgeService.ListAchievements(c.UserContext(), currentUser(c), c.Query("q"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", achievements)
}

// CheckAchievements godoc
// @Summary Evaluate achievements against metrics
// @Tags badges
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CheckAchievementsRequest true "Metrics"
// @Success 200 {object} shared.Response{data=[]dto.AchievementResponse}
// @Router /api/v1/achievements/check [post]
func (h *BadgeHandler) CheckAchievements(c *fiber.Ctx) error {
	var req dto.CheckAchievementsRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	earned, err := h.badgeService.CheckAchievements(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", earned)
}
