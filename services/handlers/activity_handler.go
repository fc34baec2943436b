package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type ActivityHandler struct {
	activityService ActivityServiceInterface
}

func NewActivityHandler(activityService ActivityServiceInterface) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// PublishContent godoc
// @Summary Record published content
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.PublishContentRequest true "Content"
// @Success 201 {object} shared.Response{data=dto.ActivityResult}
// @Router /api/v1/activity/content [post]
func (h *ActivityHandler) PublishContent(c *fiber.Ctx) error {
	var req dto.PublishContentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	result, err := h.activityService.PublishContent(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", result)
}

// CompleteTask godoc
// @Summary Complete a task
// @Description Completes task_id, or records a new completed task from title.
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CompleteTaskRequest true "Task"
// @Success 200 {object} shared.Response{data=dto.ActivityResult}
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/activity/tasks [post]
func (h *ActivityHandler) CompleteTask(c *fiber.Ctx) error {
	var req dto.CompleteTaskRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	result, err := h.activityService.CompleteTask(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// RecordEngagement godoc
// @Summary Record community engagement
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.EngagementRequest true "Engagement kind"
// @Success 200 {object} shared.Response{data=dto.ActivityResult}
// @Router /api/v1/activity/engagement [post]
func (h *ActivityHandler) RecordEngagement(c *fiber.Ctx) error {
	var req dto.EngagementRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	result, err := h.activityService.RecordEngagement(c.UserContext(), currentUser(c), req.Kind)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// RecordLogin godoc
// @Summary Record a daily login
// @Tags activity
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.StreakResponse}
// @Router /api/v1/activity/login [post]
func (h *ActivityHandler) RecordLogin(c *fiber.Ctx) error {
	streak, err := h.activityService.RecordLogin(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", streak)
}
