package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead represents a single contact captured for a location
type Lead struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	LocationID *string `gorm:"size:36;index" json:"location_id"`

	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Profession        *string `json:"profession"`
	LeadSource        *string `json:"lead_source"`
	InterestedService *string `json:"interested_service"`
	Notes             *string `gorm:"type:text" json:"notes"`
	AISummary         *string `gorm:"column:ai_summary;type:text" json:"ai_summary"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
