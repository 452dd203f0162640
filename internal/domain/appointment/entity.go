package appointment

import (
	"time"

	"github.com/salonat-app/salon-api/internal/models"
)

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkAbsent(ap *models.Appointment) error {
	if err := CanMarkAbsent(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusAbsent)
	return nil
}
