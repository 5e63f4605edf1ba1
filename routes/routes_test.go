package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commandcenter/config"
	"commandcenter/models"
	"commandcenter/testhelpers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	tenantID  = "c0ffee00-0000-0000-0000-000000000001"
	apiSecret = "let-me-in"
)

func newTestApp(t *testing.T, db *gorm.DB, cfg config.Config) *fiber.App {
	t.Helper()
	app := fiber.New()
	SetupRoutes(app, db, cfg)
	return app
}

func testConfig() config.Config {
	return config.Config{
		CorporateAccountID: tenantID,
		APISecret:          apiSecret,
	}
}

func request(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRoutes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	f := testhelpers.NewFixtures(t, db)

	home := f.Location(tenantID, "Home")
	away := f.Location("c0ffee00-0000-0000-0000-000000000002", "Away")
	mine := f.Conversation(f.Lead(home, "ann"), home, "active")
	f.Message(mine, "inbound", "sms", "hello")
	theirs := f.Conversation(f.Lead(away, "zed"), away, "active")

	app := newTestApp(t, db, testConfig())

	t.Run("health is public", func(t *testing.T) {
		resp := request(t, app, "/health", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("dashboard data for the configured tenant", func(t *testing.T) {
		resp := request(t, app, "/dashboard-data", apiSecret)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var data models.DashboardData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		assert.Equal(t, models.HeroStats{
			TotalLeads:          1,
			ActiveConversations: 1,
			ResponseRate:        100,
			MessagesInPeriod:    1,
		}, data.Hero)
		assert.Len(t, data.Cadence, 7)
	})

	t.Run("conversation list", func(t *testing.T) {
		resp := request(t, app, "/conversations", apiSecret)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var items []models.ConversationListItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, mine.ID, items[0].ID)
	})

	t.Run("own conversation detail", func(t *testing.T) {
		resp := request(t, app, "/conversations/"+mine.ID, apiSecret)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var detail models.ConversationDetail
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
		assert.Equal(t, mine.ID, detail.Conversation.ID)
		assert.Len(t, detail.Messages, 1)
	})

	t.Run("another tenant's conversation is a 404, not a 403", func(t *testing.T) {
		resp := request(t, app, "/conversations/"+theirs.ID, apiSecret)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing token is 401 and wrong token is 403", func(t *testing.T) {
		for _, path := range []string{"/dashboard-data", "/conversations", "/conversations/" + mine.ID} {
			assert.Equal(t, fiber.StatusUnauthorized, request(t, app, path, "").StatusCode, path)
			assert.Equal(t, fiber.StatusForbidden, request(t, app, path, "wrong").StatusCode, path)
		}
	})

	t.Run("unknown path is a 404", func(t *testing.T) {
		resp := request(t, app, "/nope", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestRoutesRejectBeforeDataAccess(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	app := newTestApp(t, db, testConfig())

	// With a dead store only an authorised request can reach it and fail.
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/dashboard-data", "").StatusCode)
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/dashboard-data", "wrong").StatusCode)
	assert.Equal(t, fiber.StatusInternalServerError, request(t, app, "/dashboard-data", apiSecret).StatusCode)
}

func TestRoutesWithoutConfiguration(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	t.Run("missing tenant", func(t *testing.T) {
		cfg := testConfig()
		cfg.CorporateAccountID = ""
		app := newTestApp(t, db, cfg)

		assert.Equal(t, fiber.StatusInternalServerError, request(t, app, "/dashboard-data", apiSecret).StatusCode)
		assert.Equal(t, fiber.StatusInternalServerError, request(t, app, "/conversations/x", apiSecret).StatusCode)
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.APISecret = ""
		app := newTestApp(t, db, cfg)

		assert.Equal(t, fiber.StatusInternalServerError, request(t, app, "/dashboard-data", "anything").StatusCode)
	})
}
