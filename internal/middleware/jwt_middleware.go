package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/services"
)

// LocalsUserID is the Fiber locals key carrying the authenticated user id.
const LocalsUserID = "apiUserId"

// AuthRequired is a Fiber middleware checking for a valid JWT. The token is
// taken from the Authorization header, the request body, or the query string,
// in that order.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return unauthorized(c, apperrors.ErrNoTokenProvided)
		}

		userID, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return unauthorized(c, apperrors.ErrInvalidToken)
		}

		// Store the caller identity for subsequent handlers
		c.Locals(LocalsUserID, userID)
		return c.Next()
	}
}

// OwnerRequired restricts a route to the owner of the :userId it names. Must
// run after AuthRequired.
func OwnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, _ := c.Locals(LocalsUserID).(string)
		if callerID == "" || callerID != c.Params("userId") {
			return unauthorized(c, apperrors.ErrNotAuthorized)
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return authHeader
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&body); err == nil && body.Token != "" {
		return body.Token
	}

	return c.Query("token")
}

func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
