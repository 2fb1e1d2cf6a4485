package appointment

import (
	"context"
	"log"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/audit"
	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	PetID     uint
	ServiceID uint

	Date string
	Time string

	// Raw veterinarian reference. Anything that is not a positive
	// integer leaves the appointment unassigned; it is never
	// substituted with a default veterinarian.
	VetID *int

	PetName   string
	OwnerName string

	Reason          string
	Symptoms        string
	PriorDiagnosis  string
	PriorTreatments []string
	AdditionalNotes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	details domain.DetailStore
	codec   domain.Codec
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	details domain.DetailStore,
	codec domain.Codec,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		details: details,
		codec:   codec,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validation (never touches storage)
	// --------------------------------------------------
	if in.ClientID == 0 || in.PetID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrValidation(
			"missing_required_fields",
			"Client, pet and service are required.",
		)
	}
	if !validators.IsValidDate(in.Date) {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if !validators.IsValidTime(in.Time) {
		return nil, httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
	}

	vetID := normalizeVet(in.VetID)

	// --------------------------------------------------
	// Slot check. Check-then-act: two concurrent creates can
	// both pass this before either row lands.
	// --------------------------------------------------
	occupied, err := uc.repo.CountBySlot(ctx, in.Date, in.Time, domain.SlotBlocking)
	if err != nil {
		return nil, storageErr("relational", "availability_check", err)
	}
	if occupied > 0 {
		return nil, httperr.ErrConflict(
			"slot_unavailable",
			"An appointment already exists at that date and time.",
		)
	}

	// --------------------------------------------------
	// PII goes to the relational side encrypted. Encrypt never
	// falls back: failing here is better than persisting
	// plaintext.
	// --------------------------------------------------
	petName, err := uc.encryptField(in.PetName)
	if err != nil {
		return nil, err
	}
	ownerName, err := uc.encryptField(in.OwnerName)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Relational row first; its generated id keys the document.
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:  in.ClientID,
		PetID:     in.PetID,
		ServiceID: in.ServiceID,
		VetID:     vetID,
		Date:      in.Date,
		Time:      in.Time,
		PetName:   petName,
		OwnerName: ownerName,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, storageErr("relational", "create", err)
	}

	// --------------------------------------------------
	// Document second. On failure, compensate by removing the
	// row; when compensation also fails the orphan is surfaced
	// for a targeted retry.
	// --------------------------------------------------
	treatments := in.PriorTreatments
	if treatments == nil {
		treatments = []string{}
	}

	detail := &domain.ClinicalDetail{
		AppointmentID:   idString(ap.ID),
		ClientID:        idString(in.ClientID),
		PetID:           idString(in.PetID),
		Reason:          in.Reason,
		Symptoms:        in.Symptoms,
		PriorDiagnosis:  in.PriorDiagnosis,
		PriorTreatments: treatments,
		AdditionalNotes: in.AdditionalNotes,
		State:           domain.DetailStatePending,
		Attended:        false,
	}

	if err := uc.details.Create(ctx, detail); err != nil {
		if delErr := uc.repo.Delete(ctx, ap.ID); delErr != nil {
			log.Printf("create saga: appointment %d orphaned, compensation failed: %v (document error: %v)", ap.ID, delErr, err)
			return nil, storageErr("document", "create", err).
				WithDetail("orphaned_id", idString(ap.ID))
		}
		log.Printf("create saga: appointment %d rolled back after document write failed: %v", ap.ID, err)
		return nil, storageErr("document", "create", err).
			WithDetail("compensated", "true")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *CreateAppointment) encryptField(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	enc, err := uc.codec.Encrypt(value)
	if err != nil {
		return "", httperr.ErrEncryption("encrypt_failed", err)
	}
	return enc, nil
}

// normalizeVet keeps only positive integers as an assignment; the
// rest means unassigned. A fallback to veterinarian 1 is
// deliberately absent.
func normalizeVet(v *int) *uint {
	if v == nil || *v <= 0 {
		return nil
	}
	u := uint(*v)
	return &u
}
