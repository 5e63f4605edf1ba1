package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a physical branch owned by a corporate account (the tenant).
type Location struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	CorporateAccountID *string   `gorm:"size:36;index" json:"corporate_account_id"`
	Name               *string   `json:"name"`
	City               *string   `json:"city"`
	State              *string   `json:"state"`
	SchedulingLink     *string   `json:"scheduling_link"`
	PhoneNumber        *string   `json:"phone_number"`
	EmailAddress       *string   `json:"email_address"`
	CreatedAt          time.Time `json:"created_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
