package appointment

import (
	"context"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ListAppointmentsInput struct {
	// Optional inclusive date bounds, YYYY-MM-DD.
	From string
	To   string

	// Optional single-state filter. Mutually exclusive with
	// ActiveOnly.
	State string

	// ActiveOnly restricts the listing to the slot-blocking states,
	// which is what a booking calendar wants to see.
	ActiveOnly bool
}

// ======================================================
// USE CASE
// ======================================================

// ListAppointments is the admin-facing listing: all appointments, or
// a calendar slice of them over a date range.
type ListAppointments struct {
	repo    domain.Repository
	details domain.DetailStore
	codec   domain.Codec
}

func NewListAppointments(
	repo domain.Repository,
	details domain.DetailStore,
	codec domain.Codec,
) *ListAppointments {
	return &ListAppointments{
		repo:    repo,
		details: details,
		codec:   codec,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]AppointmentView, error) {

	if in.From != "" && !validators.IsValidDate(in.From) {
		return nil, httperr.ErrValidation("invalid_from", "From must be YYYY-MM-DD.")
	}
	if in.To != "" && !validators.IsValidDate(in.To) {
		return nil, httperr.ErrValidation("invalid_to", "To must be YYYY-MM-DD.")
	}
	if in.From != "" && in.To != "" && in.To < in.From {
		return nil, httperr.ErrValidation("invalid_range", "To must not precede from.")
	}

	var states []domain.Status
	switch {
	case in.State != "":
		parsed, err := domain.ParseStatus(in.State)
		if err != nil {
			return nil, err
		}
		states = []domain.Status{parsed}
	case in.ActiveOnly:
		states = domain.SlotBlocking
	}

	apps, err := uc.repo.FindByRange(ctx, in.From, in.To, states)
	if err != nil {
		return nil, storageErr("relational", "list", err)
	}

	views := make([]AppointmentView, 0, len(apps))
	for i := range apps {
		ap := apps[i]

		detail, err := uc.details.FindByAppointmentID(ctx, idString(ap.ID))
		if err != nil {
			return nil, storageErr("document", "list", err)
		}

		views = append(views, AppointmentView{
			Appointment: ap,
			PetName:     uc.codec.Decrypt(ap.PetName),
			OwnerName:   uc.codec.Decrypt(ap.OwnerName),
			Detail:      detail,
		})
	}

	return views, nil
}
