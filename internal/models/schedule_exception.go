package models

import "time"

// ScheduleException is an ad-hoc closure: a specific date or a recurring
// weekday, the whole day or a sub-interval, salon-wide or for one staff
// member only.
type ScheduleException struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	// Exactly one of Date / Weekday is meaningful.
	Date    *time.Time `json:"date"`
	Weekday *int       `json:"weekday"`

	FullDay   bool   `json:"full_day"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Nil applies to the whole salon.
	StaffID *uint `json:"staff_id"`

	Reason string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
