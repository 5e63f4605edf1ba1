package controller

import (
	"context"
	"strings"

	"commandcenter/models"
	"commandcenter/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConversationReader interface {
	ListConversations(ctx context.Context, tenantID string) ([]models.ConversationListItem, error)
	GetConversationDetail(ctx context.Context, tenantID, conversationID string) (*models.ConversationDetail, error)
}

type ConversationController struct {
	Service  ConversationReader
	TenantID string
	Logger   *logrus.Entry
}

func NewConversationController(service ConversationReader, tenantID string, logger *logrus.Entry) *ConversationController {
	return &ConversationController{
		Service:  service,
		TenantID: tenantID,
		Logger:   logger,
	}
}

// GetConversations lists the tenant's most recent conversations
func (cc *ConversationController) GetConversations(c *fiber.Ctx) error {
	if cc.TenantID == "" {
		return respondError(c, utils.ConfigError("CORPORATE_ACCOUNT_ID"))
	}

	items, err := cc.Service.ListConversations(c.UserContext(), cc.TenantID)
	if err != nil {
		return respondError(c, err)
	}

	cc.Logger.WithField("count", len(items)).Debug("conversations listed")

	return c.JSON(items)
}

// GetConversation returns a single conversation with its lead, location and messages
func (cc *ConversationController) GetConversation(c *fiber.Ctx) error {
	if cc.TenantID == "" {
		return respondError(c, utils.ConfigError("CORPORATE_ACCOUNT_ID"))
	}

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Conversation id is required", nil)
	}

	detail, err := cc.Service.GetConversationDetail(c.UserContext(), cc.TenantID, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(detail)
}
