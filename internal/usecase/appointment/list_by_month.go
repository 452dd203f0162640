package appointment

import (
	"context"
	"time"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	salonID uint,
	year int,
	month time.Month,
	loc *time.Location,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	apps, err := uc.repo.ListAppointmentsForSalonPeriod(ctx, salonID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(apps), nil
}
