package routes

import (
	"commandcenter/config"
	controller "commandcenter/controllers"
	"commandcenter/middleware"
	"commandcenter/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	dashboardController := controller.NewDashboardController(
		services.NewDashboardService(db),
		cfg.CorporateAccountID,
		logrus.WithField("component", "dashboard"),
	)
	conversationController := controller.NewConversationController(
		services.NewConversationService(db),
		cfg.CorporateAccountID,
		logrus.WithField("component", "conversations"),
	)

	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	})
	rateLimiter := middleware.RateLimiter(cfg.RateLimitMax, middleware.NewRateLimitStorage(cfg.Redis))

	// Every data route sits behind the shared-secret check
	protected := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{
			requestLogger,
			rateLimiter,
			middleware.BearerAuth(cfg.APISecret),
			handler,
		}
	}

	app.Get("/dashboard-data", protected(dashboardController.GetDashboardData)...)
	app.Get("/conversations", protected(conversationController.GetConversations)...)
	app.Get("/conversations/:id", protected(conversationController.GetConversation)...)

	logrus.Info("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAPIRoutes(app, db, cfg)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
