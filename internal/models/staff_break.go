package models

import "time"

// StaffBreak is a staff member's unavailable interval, either recurring on
// a weekday or one-off on a date.
type StaffBreak struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	Weekday *int       `json:"weekday"`
	Date    *time.Time `json:"date"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Label string `gorm:"size:50" json:"label"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
