package testhelpers

import (
	"testing"
	"time"

	"commandcenter/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the dashboard
// tables migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serialises the
	// concurrent dashboard fetches.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// Fixtures inserts rows for a test database.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) Location(tenantID, name string) *models.Location {
	f.t.Helper()
	loc := &models.Location{
		CorporateAccountID: &tenantID,
		Name:               &name,
		City:               str("Austin"),
		State:              str("TX"),
	}
	require.NoError(f.t, f.db.Create(loc).Error)
	return loc
}

func (f *Fixtures) Lead(loc *models.Location, name string) *models.Lead {
	f.t.Helper()
	lead := &models.Lead{
		LocationID: &loc.ID,
		Name:       &name,
		Email:      str(name + "@example.com"),
	}
	require.NoError(f.t, f.db.Create(lead).Error)
	return lead
}

// Conversation creates a conversation; mutate tweaks it before insert.
func (f *Fixtures) Conversation(lead *models.Lead, loc *models.Location, status string, mutate ...func(*models.Conversation)) *models.Conversation {
	f.t.Helper()
	conv := &models.Conversation{
		LocationID: &loc.ID,
		Status:     &status,
	}
	if lead != nil {
		conv.LeadID = &lead.ID
	}
	for _, m := range mutate {
		m(conv)
	}
	require.NoError(f.t, f.db.Create(conv).Error)
	return conv
}

func (f *Fixtures) Message(conv *models.Conversation, direction, channel, content string, mutate ...func(*models.Message)) *models.Message {
	f.t.Helper()
	msg := &models.Message{
		ConversationID: conv.ID,
		Direction:      &direction,
		Channel:        &channel,
		Content:        &content,
	}
	for _, m := range mutate {
		m(msg)
	}
	require.NoError(f.t, f.db.Create(msg).Error)
	return msg
}

// At returns a fixed UTC timestamp offset by the given number of minutes.
func At(minutes int) *time.Time {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
	return &ts
}

func str(s string) *string {
	return &s
}
