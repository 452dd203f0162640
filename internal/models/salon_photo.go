package models

import "time"

type SalonPhoto struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	ObjectKey string `gorm:"size:255;not null" json:"-"`
	URL       string `gorm:"size:500" json:"url"`
	Position  int    `json:"position"`

	CreatedAt time.Time `json:"created_at"`
}
