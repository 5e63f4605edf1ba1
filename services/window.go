package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TimeWindow bounds the dashboard fetches. A nil window means all time.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

var rangeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// ParseRange turns a range preset ("7d", "30d", "90d") into a window ending at
// now. An empty key selects all time and returns nil.
func ParseRange(key string, now time.Time) (*TimeWindow, error) {
	if key == "" {
		return nil, nil
	}
	days, ok := rangeDays[key]
	if !ok {
		return nil, fmt.Errorf("unknown range %q", key)
	}
	return &TimeWindow{
		From: now.AddDate(0, 0, -days),
		To:   now,
	}, nil
}

// between restricts column to the window when one is set.
func (w *TimeWindow) between(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w == nil {
			return db
		}
		return db.Where(column+" BETWEEN ? AND ?", w.From, w.To)
	}
}

// tenantScope is the ownership predicate every read carries. Callers join
// locations before applying it.
func tenantScope(tenantID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("locations.corporate_account_id = ?", tenantID)
	}
}
