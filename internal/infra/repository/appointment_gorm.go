package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/salonat-app/salon-api/internal/db"
	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).First(&salon, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("slug = ?", slug).
			First(&salon).Error
	})
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.SalonService, error) {

	var svc models.SalonService
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND salon_id = ?", serviceID, salonID).
			First(&svc).Error
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Staff & schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) ListStaff(
	ctx context.Context,
	salonID uint,
) ([]models.User, error) {

	var staff []models.User
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("salon_id = ? AND role IN ? AND active = ?", salonID, []string{"owner", "staff"}, true).
			Order("id ASC").
			Find(&staff).Error
	})
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	salonID uint,
) (*models.SalonSchedule, error) {

	var sched models.SalonSchedule
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("salon_id = ?", salonID).
			First(&sched).Error
	})
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *AppointmentGormRepository) ListExceptionsForDay(
	ctx context.Context,
	salonID uint,
	day time.Time,
) ([]models.ScheduleException, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	weekday := int(day.Weekday())

	var exceptions []models.ScheduleException
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("salon_id = ?", salonID).
			Where("(date >= ? AND date < ?) OR weekday = ?", dayStart, dayEnd, weekday).
			Find(&exceptions).Error
	})
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *AppointmentGormRepository) ListBreaksForDay(
	ctx context.Context,
	salonID uint,
	day time.Time,
) ([]models.StaffBreak, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	weekday := int(day.Weekday())

	var breaks []models.StaffBreak
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Where("salon_id = ?", salonID).
			Where("(date >= ? AND date < ?) OR weekday = ?", dayStart, dayEnd, weekday).
			Find(&breaks).Error
	})
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentGuarded wraps the conflict re-check and the insert in
// one transaction so two concurrent bookings for the same staff slot
// cannot both pass the check. On Postgres the check takes row locks.
func (r *AppointmentGormRepository) CreateAppointmentGuarded(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Appointment{})
		if r.db.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var count int64
		if err := q.
			Where(
				"staff_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				ap.StaffID, string(domain.StatusScheduled), ap.EndTime, ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) ListScheduledForStaffDay(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Select("id", "staff_id", "start_time", "end_time").
			Where(
				"staff_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				staffID, string(domain.StatusScheduled), end, start,
			).
			Order("start_time ASC").
			Find(&apps).Error
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForSalon(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForCustomer(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", appointmentID, customerID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForSalonPeriod(
	ctx context.Context,
	salonID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Customer").
			Preload("Service").
			Preload("Staff").
			Where(
				"salon_id = ? AND start_time >= ? AND start_time < ?",
				salonID, start, end,
			).
			Order("start_time ASC").
			Find(&apps).Error
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForStaffPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Customer").
			Preload("Service").
			Where(
				"staff_id = ? AND start_time >= ? AND start_time < ?",
				staffID, start, end,
			).
			Order("start_time ASC").
			Find(&apps).Error
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := dbpkg.ReadWithRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Salon").
			Preload("Service").
			Where("customer_id = ?", customerID).
			Order("start_time DESC").
			Find(&apps).Error
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
