package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/domain/schedule"
)

// loadStaffDays assembles, for each candidate staff member of a salon,
// their scheduled appointments, breaks and applicable closures on the day
// of the requested interval. Shared by the validator, the booking flow
// and the free-slot listing.
func loadStaffDays(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	staffFilter *uint,
	day time.Time,
) (schedule.Weekly, []domain.StaffDay, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	sched, err := repo.GetSchedule(ctx, salonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return schedule.Weekly{}, nil, err
	}
	weekly := schedule.FromModel(sched)

	staff, err := repo.ListStaff(ctx, salonID)
	if err != nil {
		return weekly, nil, err
	}

	exceptions, err := repo.ListExceptionsForDay(ctx, salonID, day)
	if err != nil {
		return weekly, nil, err
	}

	breaks, err := repo.ListBreaksForDay(ctx, salonID, day)
	if err != nil {
		return weekly, nil, err
	}

	var days []domain.StaffDay
	for _, member := range staff {
		if staffFilter != nil && member.ID != *staffFilter {
			continue
		}

		sd := domain.StaffDay{StaffID: member.ID}

		booked, err := repo.ListScheduledForStaffDay(ctx, member.ID, dayStart, dayEnd)
		if err != nil {
			return weekly, nil, err
		}
		for _, ap := range booked {
			sd.Booked = append(sd.Booked, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
		}

		for _, b := range breaks {
			if b.StaffID != member.ID {
				continue
			}
			if iv, ok := domain.ProjectBreak(b, day); ok {
				sd.Breaks = append(sd.Breaks, iv)
			}
		}

		for _, e := range exceptions {
			if iv, ok := domain.ProjectException(e, day, member.ID); ok {
				sd.Closures = append(sd.Closures, iv)
			}
		}

		days = append(days, sd)
	}

	return weekly, days, nil
}
