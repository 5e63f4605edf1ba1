package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(secret string, reached *bool) *fiber.App {
	app := fiber.New()
	app.Get("/protected", BearerAuth(secret), func(c *fiber.Ctx) error {
		*reached = true
		return c.SendString("ok")
	})
	return app
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		header  string
		status  int
		reached bool
	}{
		{"missing header", "s3cret", "", fiber.StatusUnauthorized, false},
		{"not a bearer credential", "s3cret", "Basic czNjcmV0", fiber.StatusUnauthorized, false},
		{"bearer without token", "s3cret", "Bearer ", fiber.StatusUnauthorized, false},
		{"wrong token", "s3cret", "Bearer nope", fiber.StatusForbidden, false},
		{"token prefix only", "s3cret", "Bearer s3cre", fiber.StatusForbidden, false},
		{"matching token", "s3cret", "Bearer s3cret", fiber.StatusOK, true},
		{"scheme is case insensitive", "s3cret", "bearer s3cret", fiber.StatusOK, true},
		{"secret not configured", "", "Bearer anything", fiber.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			app := newAuthApp(tt.secret, &reached)

			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.reached, reached)
		})
	}
}
