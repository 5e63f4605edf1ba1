package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://dash.example.com"}

	app := fiber.New()
	app.Use(CORS(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://dash.example.com")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "https://dash.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
		assert.Equal(t, "GET,OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
