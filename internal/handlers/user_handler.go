package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/services"
)

// UserHandler handles HTTP requests for member accounts.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The owner
// middleware restricts the private-zone routes to the :userId they name.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth, owner fiber.Handler) {
	userRoutes := router.Group("/user")
	userRoutes.Put("/change-password/:userId", auth, owner, h.HandleChangePassword)
	userRoutes.Delete("/unsubscribe/:userId", auth, owner, h.HandleUnsubscribe)
	userRoutes.Get("/:id", h.HandleGet)
	userRoutes.Put("/:userId", auth, owner, h.HandleUpdate)
}

// HandleGet returns the public view of a user.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  user,
	})
}

// UserUpdateRequest represents the request body for profile updates.
type UserUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=4,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdate applies profile changes and returns the user with a fresh token.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user, err := h.userService.Update(c.Params("userId"), services.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}
	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  user,
		"token":   token,
	})
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// HandleChangePassword verifies the current password and stores the new one.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	if err := h.userService.ChangePassword(c.Params("userId"), req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": apperrors.MsgPasswordUpdated,
	})
}

// HandleUnsubscribe deletes the account and everything it owns.
func (h *UserHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	if err := h.userService.Unsubscribe(c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": apperrors.MsgRemovedUserAndAdverts,
	})
}
