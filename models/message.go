package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one inbound or outbound touch inside a conversation
type Message struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string `gorm:"size:36;not null;index" json:"conversation_id"`

	Direction      *string    `json:"direction"` // inbound, outbound
	Channel        *string    `json:"channel"`   // sms, email, both
	Content        *string    `gorm:"type:text" json:"content"`
	DeliveryStatus *string    `json:"delivery_status"` // sent, delivered, failed, bounced
	SentAt         *time.Time `gorm:"index" json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
