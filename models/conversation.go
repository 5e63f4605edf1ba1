package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a single outreach thread with a lead. Status, stage and
// primary channel are written by the ingestion pipeline and kept as open strings.
type Conversation struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	LeadID     *string `gorm:"size:36;index" json:"lead_id"`
	LocationID *string `gorm:"size:36;index" json:"location_id"`

	Status          *string    `gorm:"index" json:"status"` // active, completed, dormant, handed_off, ...
	Stage           *string    `json:"stage"`
	IntentScore     *float64   `json:"intent_score"`
	FollowUpAttempt *int       `gorm:"default:0" json:"follow_up_attempt"`
	PrimaryChannel  *string    `json:"primary_channel"` // sms, email, both
	LastActivity    *time.Time `gorm:"index" json:"last_activity"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Lead     *Lead     `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
