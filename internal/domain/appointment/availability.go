package appointment

import "time"

type AvailabilityInput struct {
	SalonID   uint
	StaffID   *uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	StaffID uint   `json:"staff_id"`
}

type ValidateInput struct {
	SalonID     uint
	StaffID     *uint
	Start       time.Time
	End         time.Time
	DurationMin int
}
