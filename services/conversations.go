package services

import (
	"context"
	"time"

	"commandcenter/models"
	"commandcenter/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationListLimit caps the conversation table to the most recent rows.
const ConversationListLimit = 50

type ConversationService struct {
	DB *gorm.DB
}

func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{DB: db}
}

type conversationListRow struct {
	ID              string
	Status          *string
	PrimaryChannel  *string
	IntentScore     *float64
	FollowUpAttempt *int
	LastActivity    *time.Time
	LeadName        *string
	LeadEmail       *string
	LeadPhone       *string
	LeadProfession  *string
	LocationName    *string
	LocationCity    *string
	LocationState   *string
}

type conversationDetailRow struct {
	ID              string
	Status          *string
	Stage           *string
	PrimaryChannel  *string
	IntentScore     *float64
	FollowUpAttempt *int
	LastActivity    *time.Time

	LeadID                *string
	LeadName              *string
	LeadEmail             *string
	LeadPhone             *string
	LeadProfession        *string
	LeadSource            *string
	LeadInterestedService *string
	LeadNotes             *string
	LeadAISummary         *string

	LocationID             *string
	LocationName           *string
	LocationCity           *string
	LocationState          *string
	LocationSchedulingLink *string
	LocationPhoneNumber    *string
	LocationEmailAddress   *string
}

const (
	conversationListColumns = `conversations.id, conversations.status, conversations.primary_channel,
		conversations.intent_score, conversations.follow_up_attempt, conversations.last_activity,
		leads.name AS lead_name, leads.email AS lead_email, leads.phone AS lead_phone,
		leads.profession AS lead_profession,
		locations.name AS location_name, locations.city AS location_city, locations.state AS location_state`

	conversationDetailColumns = `conversations.id, conversations.status, conversations.stage,
		conversations.primary_channel, conversations.intent_score, conversations.follow_up_attempt,
		conversations.last_activity,
		leads.id AS lead_id, leads.name AS lead_name, leads.email AS lead_email, leads.phone AS lead_phone,
		leads.profession AS lead_profession, leads.lead_source AS lead_source,
		leads.interested_service AS lead_interested_service, leads.notes AS lead_notes,
		leads.ai_summary AS lead_ai_summary,
		locations.id AS location_id, locations.name AS location_name, locations.city AS location_city,
		locations.state AS location_state, locations.scheduling_link AS location_scheduling_link,
		locations.phone_number AS location_phone_number, locations.email_address AS location_email_address`
)

// ownedConversations selects conversations whose location belongs to the
// tenant, with the lead joined when present.
func (s *ConversationService) ownedConversations(ctx context.Context, tenantID string) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("conversations").
		Joins("JOIN locations ON locations.id = conversations.location_id").
		Joins("LEFT JOIN leads ON leads.id = conversations.lead_id").
		Scopes(tenantScope(tenantID))
}

// ListConversations returns the tenant's most recently active conversations,
// newest first with never-active ones last.
func (s *ConversationService) ListConversations(ctx context.Context, tenantID string) ([]models.ConversationListItem, error) {
	if tenantID == "" {
		return nil, utils.ErrTenantRequired
	}

	var rows []conversationListRow
	err := s.ownedConversations(ctx, tenantID).
		Select(conversationListColumns).
		Order("conversations.last_activity DESC NULLS LAST").
		Order("conversations.id ASC").
		Limit(ConversationListLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewStoreError("list conversations", err)
	}

	items := make([]models.ConversationListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.ConversationListItem{
			ID:              row.ID,
			Status:          row.Status,
			PrimaryChannel:  row.PrimaryChannel,
			IntentScore:     row.IntentScore,
			FollowUpAttempt: utils.Deref(row.FollowUpAttempt),
			LastActivity:    row.LastActivity,
			LeadName:        row.LeadName,
			LeadEmail:       row.LeadEmail,
			LeadPhone:       row.LeadPhone,
			LeadProfession:  row.LeadProfession,
			LocationName:    row.LocationName,
			LocationCity:    row.LocationCity,
			LocationState:   row.LocationState,
		})
	}
	return items, nil
}

// GetConversationDetail loads one conversation with its lead, location and
// messages. Conversations owned by another tenant are reported exactly like
// missing ones, with ErrConversationNotFound.
func (s *ConversationService) GetConversationDetail(ctx context.Context, tenantID, conversationID string) (*models.ConversationDetail, error) {
	if tenantID == "" {
		return nil, utils.ErrTenantRequired
	}
	if _, err := uuid.Parse(conversationID); err != nil {
		return nil, utils.ErrConversationNotFound
	}

	var rows []conversationDetailRow
	err := s.ownedConversations(ctx, tenantID).
		Select(conversationDetailColumns).
		Where("conversations.id = ?", conversationID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.NewStoreError("get conversation", err)
	}
	if len(rows) == 0 {
		return nil, utils.ErrConversationNotFound
	}
	row := rows[0]

	messages, err := s.conversationMessages(ctx, tenantID, conversationID)
	if err != nil {
		return nil, err
	}

	return &models.ConversationDetail{
		Conversation: models.ConversationSummary{
			ID:              row.ID,
			Status:          row.Status,
			Stage:           row.Stage,
			PrimaryChannel:  row.PrimaryChannel,
			IntentScore:     row.IntentScore,
			FollowUpAttempt: utils.Deref(row.FollowUpAttempt),
			LastActivity:    row.LastActivity,
		},
		Lead: models.LeadProfile{
			ID:                utils.Deref(row.LeadID),
			Name:              row.LeadName,
			Email:             row.LeadEmail,
			Phone:             row.LeadPhone,
			Profession:        row.LeadProfession,
			LeadSource:        row.LeadSource,
			InterestedService: row.LeadInterestedService,
			Notes:             row.LeadNotes,
			AISummary:         row.LeadAISummary,
		},
		Location: models.LocationProfile{
			ID:             utils.Deref(row.LocationID),
			Name:           row.LocationName,
			City:           row.LocationCity,
			State:          row.LocationState,
			SchedulingLink: row.LocationSchedulingLink,
			PhoneNumber:    row.LocationPhoneNumber,
			EmailAddress:   row.LocationEmailAddress,
		},
		Messages: messages,
	}, nil
}

// conversationMessages returns messages oldest first; unsent ones (NULL
// sent_at) come last and ties fall back to id.
func (s *ConversationService) conversationMessages(ctx context.Context, tenantID, conversationID string) ([]models.ConversationMessage, error) {
	var rows []models.Message
	err := s.DB.WithContext(ctx).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Joins("JOIN locations ON locations.id = conversations.location_id").
		Scopes(tenantScope(tenantID)).
		Where("messages.conversation_id = ?", conversationID).
		Order("messages.sent_at ASC NULLS LAST").
		Order("messages.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, utils.NewStoreError("list conversation messages", err)
	}

	messages := make([]models.ConversationMessage, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, models.ConversationMessage{
			ID:             m.ID,
			Direction:      m.Direction,
			Channel:        m.Channel,
			Content:        m.Content,
			DeliveryStatus: m.DeliveryStatus,
			SentAt:         m.SentAt,
		})
	}
	return messages, nil
}
