package appointment

import (
	"context"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

// AppointmentView pairs the decrypted relational row with its
// clinical detail document. Detail is nil when the document is
// missing (an orphan the create saga reported earlier).
type AppointmentView struct {
	Appointment models.Appointment
	PetName     string
	OwnerName   string
	Detail      *domain.ClinicalDetail
}

type GetAppointment struct {
	repo    domain.Repository
	details domain.DetailStore
	codec   domain.Codec
}

func NewGetAppointment(
	repo domain.Repository,
	details domain.DetailStore,
	codec domain.Codec,
) *GetAppointment {
	return &GetAppointment{
		repo:    repo,
		details: details,
		codec:   codec,
	}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uint,
) (*AppointmentView, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("relational", "find", err)
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment does not exist.")
	}

	detail, err := uc.details.FindByAppointmentID(ctx, idString(id))
	if err != nil {
		return nil, storageErr("document", "find", err)
	}

	return &AppointmentView{
		Appointment: *ap,
		PetName:     uc.codec.Decrypt(ap.PetName),
		OwnerName:   uc.codec.Decrypt(ap.OwnerName),
		Detail:      detail,
	}, nil
}
