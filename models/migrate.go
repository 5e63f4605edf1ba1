package models

import "gorm.io/gorm"

// AutoMigrate creates the tables the dashboard reads from. Production schemas
// are owned by the ingestion pipeline; this is for local setups and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Location{},
		&Lead{},
		&Conversation{},
		&Message{},
	)
}
