package controller

import (
	"commandcenter/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto its status. Server-side failures
// are logged and reported; the client only sees a generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := utils.StatusFor(err)
	switch status {
	case fiber.StatusNotFound:
		return utils.ErrorResponse(c, status, "Conversation not found", nil)
	case fiber.StatusBadRequest:
		return utils.ErrorResponse(c, status, "Invalid request", err)
	case fiber.StatusUnauthorized:
		return utils.ErrorResponse(c, status, "Unauthorized", nil)
	case fiber.StatusForbidden:
		return utils.ErrorResponse(c, status, "Forbidden", nil)
	}

	utils.LogError("request_failed", err, map[string]interface{}{
		"path":       c.Path(),
		"request_id": c.Locals("requestid"),
	})
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load data", nil)
}
