package models

import "time"

// SalonSchedule is the weekly opening pattern of a salon. Opening after
// closing ("22:00" / "06:00") means the schedule wraps past midnight.
type SalonSchedule struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex" json:"salon_id"`

	Opening string `gorm:"size:5;not null" json:"opening"`
	Closing string `gorm:"size:5;not null" json:"closing"`

	// Comma-separated weekday indexes (0 = Sunday) the salon stays closed.
	ClosedDays string `gorm:"size:20" json:"closed_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
