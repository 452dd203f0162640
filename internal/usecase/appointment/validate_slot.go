package appointment

import (
	"context"

	domain "github.com/salonat-app/salon-api/internal/domain/appointment"
	"github.com/salonat-app/salon-api/internal/httperr"
)

// ValidateSlot is the read-only slot check exposed as a dry-run endpoint
// and reused by the booking flow before the transactional insert.
type ValidateSlot struct {
	repo domain.Repository
}

func NewValidateSlot(repo domain.Repository) *ValidateSlot {
	return &ValidateSlot{repo: repo}
}

func (uc *ValidateSlot) Execute(
	ctx context.Context,
	in domain.ValidateInput,
) (domain.ValidationResult, error) {

	if _, err := uc.repo.GetSalonByID(ctx, in.SalonID); err != nil {
		return domain.ValidationResult{}, httperr.ErrBusiness("salon_not_found")
	}

	end := in.End
	if end.IsZero() && in.DurationMin > 0 {
		end = in.Start.Add(minutes(in.DurationMin))
	}

	weekly, days, err := loadStaffDays(ctx, uc.repo, in.SalonID, in.StaffID, in.Start)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	req := domain.Interval{Start: in.Start, End: end}
	return domain.ValidateSlot(req, weekly, in.StaffID, days), nil
}
