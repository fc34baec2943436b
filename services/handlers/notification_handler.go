package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type NotificationHandler struct {
	notificationService NotificationServiceInterface
}

func NewNotificationHandler(notificationService NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param unread query bool false "Only unread"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {object} shared.Response{data=[]model.Notification}
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	list, err := h.notificationService.ListNotifications(c.UserContext(), currentUser(c), c.QueryBool("unread"), queryLimit(c, 50, 200))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", list)
}

// MarkRead godoc
// @Summary Mark notifications read
// @Tags notifications
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.MarkReadRequest true "Notification IDs"
// @Success 200 {object} shared.Response{data=map[string]int64}
// @Router /api/v1/notifications/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	var req dto.MarkReadRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	n, err := h.notificationService.MarkRead(c.UserContext(), currentUser(c), req.IDs)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", map[string]int64{"updated": n})
}
