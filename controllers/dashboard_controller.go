package controller

import (
	"context"
	"time"

	"commandcenter/models"
	"commandcenter/services"
	"commandcenter/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DashboardReader is the aggregation the dashboard endpoint serves.
type DashboardReader interface {
	GetDashboard(ctx context.Context, tenantID string, window *services.TimeWindow) (*models.DashboardData, error)
}

type DashboardController struct {
	Service  DashboardReader
	TenantID string
	Logger   *logrus.Entry

	now func() time.Time
}

func NewDashboardController(service DashboardReader, tenantID string, logger *logrus.Entry) *DashboardController {
	return &DashboardController{
		Service:  service,
		TenantID: tenantID,
		Logger:   logger,
		now:      time.Now,
	}
}

type DashboardQuery struct {
	Range string `query:"range" validate:"omitempty,oneof=7d 30d 90d"`
}

// GetDashboardData returns the hero stats, pipeline, cadence and channel
// breakdowns. Without a range the aggregate covers all time.
func (dc *DashboardController) GetDashboardData(c *fiber.Ctx) error {
	if dc.TenantID == "" {
		return respondError(c, utils.ConfigError("CORPORATE_ACCOUNT_ID"))
	}

	var query DashboardQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", nil)
	}
	if err := utils.ValidateStruct(query); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	window, err := services.ParseRange(query.Range, dc.now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid range", nil)
	}

	data, err := dc.Service.GetDashboard(c.UserContext(), dc.TenantID, window)
	if err != nil {
		return respondError(c, err)
	}

	dc.Logger.WithFields(logrus.Fields{
		"range":    query.Range,
		"messages": data.Hero.MessagesInPeriod,
	}).Debug("dashboard aggregated")

	return c.JSON(data)
}
