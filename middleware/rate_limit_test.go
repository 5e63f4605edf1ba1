package middleware

import (
	"net/http/httptest"
	"testing"

	"commandcenter/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("rejects requests over the limit", func(t *testing.T) {
		app := fiber.New()
		app.Get("/limited", RateLimiter(2, nil), func(c *fiber.Ctx) error { return c.SendString("ok") })

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/limited", nil))
			require.NoError(t, err)
			statuses = append(statuses, resp.StatusCode)
		}
		assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
	})

	t.Run("zero disables limiting", func(t *testing.T) {
		app := fiber.New()
		app.Get("/open", RateLimiter(0, nil), func(c *fiber.Ctx) error { return c.SendString("ok") })

		for i := 0; i < 5; i++ {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/open", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		}
	})
}

func TestNewRateLimitStorage(t *testing.T) {
	assert.Nil(t, NewRateLimitStorage(config.RedisConfig{Enabled: false}))

	storage := NewRateLimitStorage(config.RedisConfig{Enabled: true, Address: "localhost:6379"})
	require.NotNil(t, storage)
	assert.IsType(t, &RedisStorage{}, storage)
	assert.NoError(t, storage.Close())
}

func TestGenerateRateLimitKey(t *testing.T) {
	assert.Equal(t, "rl:10.0.0.1:/conversations/:id", GenerateRateLimitKey("10.0.0.1", "/conversations/:id"))
}
