package appointment

import (
	"context"
	"time"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
)

// GetAvailability lists free slots for a date and service, stepping the
// salon's opening window by the service duration. Each returned slot
// names the staff member that would take it.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	svc, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	weekly, days, err := loadStaffDays(ctx, uc.repo, in.SalonID, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return []domain.TimeSlot{}, nil
	}

	if weekly.ClosedDays[int(in.Date.Weekday())] {
		return []domain.TimeSlot{}, nil
	}

	dayBase := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0, in.Date.Location(),
	)

	openAt := dayBase.Add(time.Duration(weekly.OpeningMin) * time.Minute)
	closeAt := dayBase.Add(time.Duration(weekly.ClosingMin) * time.Minute)
	if weekly.ClosingMin <= weekly.OpeningMin {
		// Overnight schedules spill into the next day.
		closeAt = closeAt.Add(24 * time.Hour)
	}

	step := time.Duration(svc.DurationMin) * time.Minute
	if step <= 0 {
		return []domain.TimeSlot{}, nil
	}

	var slots []domain.TimeSlot
	for cur := openAt; !cur.Add(step).After(closeAt); cur = cur.Add(step) {
		req := domain.Interval{Start: cur, End: cur.Add(step)}

		for _, sd := range days {
			if staffFree(req, sd) {
				slots = append(slots, domain.TimeSlot{
					Start:   req.Start.Format("15:04"),
					End:     req.End.Format("15:04"),
					StaffID: sd.StaffID,
				})
				break
			}
		}
	}

	return slots, nil
}

func staffFree(req domain.Interval, sd domain.StaffDay) bool {
	for _, b := range sd.Booked {
		if req.Overlaps(b) {
			return false
		}
	}
	for _, b := range sd.Breaks {
		if req.Overlaps(b) {
			return false
		}
	}
	for _, c := range sd.Closures {
		if req.Overlaps(c) {
			return false
		}
	}
	return true
}
