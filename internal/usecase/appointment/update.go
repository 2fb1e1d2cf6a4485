package appointment

import (
	"context"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/audit"
	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

// Nil pointers leave a field untouched. State is not updatable
// here; ChangeState owns the machine.
type UpdateAppointmentInput struct {
	ClientID  *uint
	PetID     *uint
	ServiceID *uint
	Date      *string
	Time      *string

	PetName   *string
	OwnerName *string

	Reason          *string
	Symptoms        *string
	PriorDiagnosis  *string
	PriorTreatments []string
	AdditionalNotes *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo    domain.Repository
	details domain.DetailStore
	codec   domain.Codec
	audit   *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	details domain.DetailStore,
	codec domain.Codec,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:    repo,
		details: details,
		codec:   codec,
		audit:   audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) error {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return storageErr("relational", "find", err)
	}
	if ap == nil {
		return httperr.ErrNotFound("appointment_not_found", "Appointment does not exist.")
	}
	if domain.Status(ap.Status).Terminal() {
		return httperr.ErrValidation(
			"appointment_terminal",
			"A cancelled or completed appointment cannot be modified.",
		)
	}

	fields, err := uc.relationalFields(in)
	if err != nil {
		return err
	}

	if len(fields) > 0 {
		if err := uc.repo.Update(ctx, id, fields); err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return err
			}
			return storageErr("relational", "update", err)
		}
	}

	patch := uc.detailPatch(in)
	if len(patch) > 0 {
		if err := uc.details.Upsert(ctx, idString(id), patch); err != nil {
			return storageErr("document", "update", err).
				WithDetail("appointment_id", idString(id))
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}

func (uc *UpdateAppointment) relationalFields(in UpdateAppointmentInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if in.ClientID != nil {
		fields["client_id"] = *in.ClientID
	}
	if in.PetID != nil {
		fields["pet_id"] = *in.PetID
	}
	if in.ServiceID != nil {
		fields["service_id"] = *in.ServiceID
	}
	if in.Date != nil {
		if !validators.IsValidDate(*in.Date) {
			return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
		}
		fields["date"] = *in.Date
	}
	if in.Time != nil {
		if !validators.IsValidTime(*in.Time) {
			return nil, httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
		}
		fields["time"] = *in.Time
	}

	if in.PetName != nil {
		enc, err := uc.codec.Encrypt(*in.PetName)
		if err != nil {
			return nil, httperr.ErrEncryption("encrypt_failed", err)
		}
		fields["pet_name"] = enc
	}
	if in.OwnerName != nil {
		enc, err := uc.codec.Encrypt(*in.OwnerName)
		if err != nil {
			return nil, httperr.ErrEncryption("encrypt_failed", err)
		}
		fields["owner_name"] = enc
	}

	return fields, nil
}

func (uc *UpdateAppointment) detailPatch(in UpdateAppointmentInput) domain.DetailPatch {
	patch := domain.DetailPatch{}

	if in.Reason != nil {
		patch["reason"] = *in.Reason
	}
	if in.Symptoms != nil {
		patch["symptoms"] = *in.Symptoms
	}
	if in.PriorDiagnosis != nil {
		patch["priorDiagnosis"] = *in.PriorDiagnosis
	}
	if in.PriorTreatments != nil {
		patch["priorTreatments"] = in.PriorTreatments
	}
	if in.AdditionalNotes != nil {
		patch["additionalNotes"] = *in.AdditionalNotes
	}

	return patch
}
