package appointment

import (
	"time"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a validated state change to the row, stamping
// the matching timestamp. The caller persists.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}
