package appointment

import (
	"context"

	"github.com/salonat-app/salon-api/internal/audit"
	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/models"
)

// MarkAbsent moves a scheduled appointment to absent when the customer
// did not show up. Also used by the nightly sweeper.
type MarkAbsent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkAbsent(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkAbsent {
	return &MarkAbsent{
		repo:  repo,
		audit: audit,
	}
}

func (uc *MarkAbsent) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.MarkAbsent(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_marked_absent",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
