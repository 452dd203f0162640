package models

import "time"

type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	City    string `gorm:"size:50;index" json:"city"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	// Audience the salon serves: female, male or both.
	Gender string `gorm:"size:10;default:'female'" json:"gender"`

	// 1 = budget, 2 = mid, 3 = premium
	PriceLevel int `gorm:"default:2" json:"price_level"`

	Timezone string `gorm:"size:50" json:"timezone"`

	MinAdvanceMinutes int  `gorm:"default:60" json:"min_advance_minutes"`
	Active            bool `gorm:"default:true" json:"active"`
	Approved          bool `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
