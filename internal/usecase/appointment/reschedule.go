package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/audit"
	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleInput struct {
	Date  *string
	Time  *string
	VetID *int

	// Optional reason, kept in the clinical notes.
	Note string
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo    domain.Repository
	details domain.DetailStore
	audit   *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	details domain.DetailStore,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		details: details,
		audit:   audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	id uint,
	in RescheduleInput,
) error {

	if in.Date == nil && in.Time == nil && in.VetID == nil {
		return httperr.ErrValidation(
			"nothing_to_reschedule",
			"Provide at least a date, time or veterinarian.",
		)
	}
	if in.Date != nil && !validators.IsValidDate(*in.Date) {
		return httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if in.Time != nil && !validators.IsValidTime(*in.Time) {
		return httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
	}

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
			"A cancelled or completed appointment cannot be rescheduled.",
		)
	}

	// --------------------------------------------------
	// Re-check the target slot when the slot itself moves.
	// --------------------------------------------------
	targetDate, targetTime := ap.Date, ap.Time
	slotMoved := false
	if in.Date != nil && *in.Date != ap.Date {
		targetDate = *in.Date
		slotMoved = true
	}
	if in.Time != nil && *in.Time != ap.Time {
		targetTime = *in.Time
		slotMoved = true
	}

	if slotMoved {
		occupied, err := uc.repo.CountBySlot(ctx, targetDate, targetTime, domain.SlotBlocking)
		if err != nil {
			return storageErr("relational", "availability_check", err)
		}
		if occupied > 0 {
			return httperr.ErrConflict(
				"slot_unavailable",
				"An appointment already exists at that date and time.",
			)
		}
	}

	fields := map[string]interface{}{}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Time != nil {
		fields["time"] = *in.Time
	}
	if in.VetID != nil {
		fields["vet_id"] = normalizeVet(in.VetID)
	}

	if err := uc.repo.Update(ctx, id, fields); err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return err
		}
		return storageErr("relational", "reschedule", err)
	}

	// --------------------------------------------------
	// The note is prepended, never overwriting what the clinic
	// already wrote.
	// --------------------------------------------------
	note := fmt.Sprintf("Rescheduled to %s %s", targetDate, targetTime)
	if in.Note != "" {
		note += ": " + in.Note
	}

	existingNotes := ""
	if detail, err := uc.details.FindByAppointmentID(ctx, idString(id)); err == nil && detail != nil {
		existingNotes = detail.AdditionalNotes
	}

	combined := note
	if existingNotes != "" {
		combined = note + ". " + strings.TrimSpace(existingNotes)
	}

	patch := domain.DetailPatch{"additionalNotes": combined}
	if err := uc.details.Upsert(ctx, idString(id), patch); err != nil {
		return storageErr("document", "reschedule", err).
			WithDetail("appointment_id", idString(id))
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
