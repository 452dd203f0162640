package appointment

import (
	"context"
	"time"

	"github.com/salonat-app/salon-api/internal/audit"
	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/models"
	"github.com/salonat-app/salon-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint
	StaffID *uint // nil lets the salon pick

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if !salon.Active || !salon.Approved {
		return nil, httperr.ErrBusiness("salon_unavailable")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(minutes(minAdvance))) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(minutes(svc.DurationMin))

	// Slot check, including staff auto-assignment when none was named.
	weekly, days, err := loadStaffDays(ctx, uc.repo, in.SalonID, in.StaffID, start)
	if err != nil {
		return nil, err
	}

	result := domain.ValidateSlot(
		domain.Interval{Start: start, End: end},
		weekly,
		in.StaffID,
		days,
	)
	if !result.Valid {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		SalonID:    in.SalonID,
		CustomerID: customer.ID,
		StaffID:    result.StaffID,
		ServiceID:  svc.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Price:      svc.Price,
		Notes:      in.Notes,
	}

	// The read check above can race a concurrent booking; the guarded
	// insert re-checks inside a transaction and is the source of truth.
	if err := uc.repo.CreateAppointmentGuarded(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   result.StaffID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
