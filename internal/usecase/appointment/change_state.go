package appointment

import (
	"context"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/audit"
	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ChangeStateInput struct {
	State    string
	Notes    *string
	Attended *bool
}

// ======================================================
// USE CASE
// ======================================================

type ChangeState struct {
	repo    domain.Repository
	details domain.DetailStore
	audit   *audit.Dispatcher
	tz      string
}

func NewChangeState(
	repo domain.Repository,
	details domain.DetailStore,
	audit *audit.Dispatcher,
	tz string,
) *ChangeState {
	return &ChangeState{
		repo:    repo,
		details: details,
		audit:   audit,
		tz:      tz,
	}
}

func (uc *ChangeState) Execute(
	ctx context.Context,
	id uint,
	in ChangeStateInput,
) error {

	// Unknown state strings are rejected before any store access.
	next, err := domain.ParseStatus(in.State)
	if err != nil {
		return err
	}

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return storageErr("relational", "find", err)
	}
	if ap == nil {
		return httperr.ErrNotFound("appointment_not_found", "Appointment does not exist.")
	}

	// Illegal transitions leave both stores untouched.
	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, next, now); err != nil {
		return err
	}

	fields := map[string]interface{}{"status": ap.Status}
	switch next {
	case domain.StatusCancelled:
		fields["cancelled_at"] = ap.CancelledAt
	case domain.StatusCompleted:
		fields["completed_at"] = ap.CompletedAt
	}

	if err := uc.repo.Update(ctx, id, fields); err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return err
		}
		return storageErr("relational", "change_state", err)
	}

	patch := domain.DetailPatch{"state": string(next)}
	if in.Notes != nil {
		patch["additionalNotes"] = *in.Notes
	}
	if in.Attended != nil {
		patch["attended"] = *in.Attended
	}
	if next == domain.StatusCompleted {
		patch["actualCompletionDate"] = now
	}

	// The row already moved; a document failure here is a known
	// partial state and is reported as such.
	if err := uc.details.Upsert(ctx, idString(id), patch); err != nil {
		return storageErr("document", "change_state", err).
			WithDetail("appointment_id", idString(id))
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
