package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	// Only client errors echo their cause; server-side failures stay in the logs.
	var validationErr *ValidationError
	if err != nil && errors.As(err, &validationErr) {
		response["details"] = validationErr.Error()
	}
	return c.Status(status).JSON(response)
}

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
