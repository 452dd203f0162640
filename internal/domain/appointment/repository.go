package appointment

import (
	"context"
	"time"

	"github.com/salonat-app/salon-api/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.SalonService, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Staff & schedule --------
	ListStaff(
		ctx context.Context,
		salonID uint,
	) ([]models.User, error)

	GetSchedule(
		ctx context.Context,
		salonID uint,
	) (*models.SalonSchedule, error)

	ListExceptionsForDay(
		ctx context.Context,
		salonID uint,
		day time.Time,
	) ([]models.ScheduleException, error)

	ListBreaksForDay(
		ctx context.Context,
		salonID uint,
		day time.Time,
	) ([]models.StaffBreak, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentGuarded re-runs the staff conflict check inside a
	// transaction holding row locks, then inserts. Returns
	// BusinessError("time_conflict") when the slot was taken in between.
	CreateAppointmentGuarded(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListScheduledForStaffDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointmentForSalon(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	GetAppointmentForCustomer(
		ctx context.Context,
		appointmentID uint,
		customerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForSalonPeriod(
		ctx context.Context,
		salonID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForStaffPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)
}
