package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wallaclone/internal/apperrors"
)

// Development controls whether unexpected error details leak into responses.
// Set once at startup from APP_ENV.
var Development bool

// fail maps an error to the response envelope. Domain errors carry their own
// status and message, anything else is an opaque 500 outside development.
func fail(c *fiber.Ctx, err error) error {
	if apperrors.IsDomain(err) {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	log.Printf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	message := "Internal server error"
	if Development {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// validationFail reports struct validation errors as a per-field 422 envelope.
func validationFail(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["body"] = err.Error()
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed",
		"errors":  errorMessages,
	})
}

// badBody reports an unparseable request body.
func badBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid request body",
	})
}
