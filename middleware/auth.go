package middleware

import (
	"crypto/subtle"
	"strings"

	"commandcenter/utils"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth guards a route with a single shared secret. A missing secret is
// a server misconfiguration (500), a missing credential is 401 and a wrong
// one is 403. Nothing downstream runs unless the token matches.
func BearerAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			utils.LogError("configuration", utils.ConfigError("DASHBOARD_API_SECRET"), map[string]interface{}{
				"path": c.Path(),
			})
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Server is not configured", nil)
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		// Check if it's a Bearer token
		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			utils.LogEvent("auth_rejected", map[string]interface{}{
				"path": c.Path(),
				"ip":   c.IP(),
			})
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Forbidden", nil)
		}

		return c.Next()
	}
}
