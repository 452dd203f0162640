package models

import "time"

// User is a salon-side account: the owner, a staff member or a platform admin.
type User struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID *uint `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	// Bcrypt hash of the short role-switch PIN. Empty means no PIN set.
	PinHash string `gorm:"size:255" json:"-"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
