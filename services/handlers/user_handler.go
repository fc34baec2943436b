package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser godoc
// @Summary Register a user
// @Description Creates the gamification profile for an account issued by the identity provider.
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} shared.Response{data=dto.ProfileResponse}
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if req.ID != currentUser(c) {
		return shared.NewForbiddenError(nil, "User id does not match token")
	}

	profile, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", profile)
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProfileResponse}
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}
