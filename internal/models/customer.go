package models

import "time"

// Customer is an end customer booking through the app. No password:
// customers authenticate through the mobile client, the API only keeps
// the profile used for bookings and the AI consultant.
type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	City     string `gorm:"size:50" json:"city"`
	Gender   string `gorm:"size:10" json:"gender"`
	Language string `gorm:"size:5;default:'ar'" json:"language"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
