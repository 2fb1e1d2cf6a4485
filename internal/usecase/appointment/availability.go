package appointment

import (
	"context"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

// CheckAvailability is the read side of slot occupancy. The check
// is global per (date, time): two veterinarians cannot share a
// displayed slot.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	date string,
	hour string,
) (bool, error) {

	if !validators.IsValidDate(date) {
		return false, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if !validators.IsValidTime(hour) {
		return false, httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
	}

	occupied, err := uc.repo.CountBySlot(ctx, date, hour, domain.SlotBlocking)
	if err != nil {
		return false, storageErr("relational", "availability_check", err)
	}

	return occupied == 0, nil
}
