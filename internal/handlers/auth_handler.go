package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/middleware"
	"wallaclone/internal/models"
	"wallaclone/internal/services"
)

// AuthHandler handles HTTP requests for authentication and account recovery.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignUp)
	authRoutes.Post("/signin", h.HandleSignIn)
	authRoutes.Post("/checkToken", auth, h.HandleCheckToken)
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Get("/reset-password", h.HandleResetPassword)
	authRoutes.Put("/update-password", h.HandleUpdatePassword)
}

// SignUpRequest represents the request body for registration. The password
// lives here and not on models.User, whose password field is never
// serialized in either direction.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=4,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSignUp handles new user registration and issues a JWT.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	created, err := h.authService.SignUp(&user)
	if err != nil {
		return fail(c, err)
	}
	token, err := h.authService.IssueToken(created.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  created,
		"token":   token,
	})
}

// CredentialsRequest represents the request body for sign-in.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn handles user login and issues a JWT.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user, token, err := h.authService.SignIn(req.Username, req.Password)
	if err != nil {
		log.Printf("Sign-in failed for user %s: %v", req.Username, err)
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  user,
		"token":   token,
	})
}

// HandleCheckToken returns the account behind a valid token.
func (h *AuthHandler) HandleCheckToken(c *fiber.Ctx) error {
	callerID, _ := c.Locals(middleware.LocalsUserID).(string)
	user, err := h.userService.Get(callerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  user,
	})
}

// ForgotPasswordRequest represents the request body for password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword stores a reset token and enqueues the recovery mail.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": apperrors.MsgEmailSent,
	})
}

// HandleResetPassword checks a reset token and reveals the account email.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	email, err := h.authService.ResetPassword(c.Query("token"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  fiber.Map{"email": email},
	})
}

// UpdatePasswordRequest represents the request body for consuming a reset token.
type UpdatePasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleUpdatePassword consumes a reset token and stores the new password.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	if err := h.authService.UpdatePassword(req.Token, req.Email, req.Password); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": apperrors.MsgPasswordUpdated,
	})
}
