package appointment

import (
	"testing"
	"time"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"scheduled", "confirmed", "cancelled", "completed"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Fatalf("ParseStatus(%q): %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "Scheduled", "archived", "programada"} {
		_, err := ParseStatus(invalid)
		if !httperr.IsKind(err, httperr.KindValidation) {
			t.Fatalf("ParseStatus(%q): expected validation error, got %v", invalid, err)
		}
	}
}

func TestTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusCompleted}, // direct completion is permitted
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
	}
	for _, tc := range allowed {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
	}

	rejected := []struct{ from, to Status }{
		{StatusScheduled, StatusScheduled},
		{StatusConfirmed, StatusScheduled},
		{StatusConfirmed, StatusConfirmed},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCompleted},
		{StatusCompleted, StatusScheduled},
		{StatusCompleted, StatusCancelled},
	}
	for _, tc := range rejected {
		err := CanTransition(tc.from, tc.to)
		if !httperr.IsKind(err, httperr.KindValidation) {
			t.Fatalf("%s -> %s should be rejected, got %v", tc.from, tc.to, err)
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusScheduled.Terminal() || StatusConfirmed.Terminal() {
		t.Fatal("scheduled and confirmed are not terminal")
	}
	if !StatusCancelled.Terminal() || !StatusCompleted.Terminal() {
		t.Fatal("cancelled and completed are terminal")
	}
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Transition(ap, StatusCompleted, now); err != nil {
		t.Fatal(err)
	}
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Fatal("completion must stamp CompletedAt")
	}

	ap = &models.Appointment{Status: string(StatusConfirmed)}
	if err := Cancel(ap, now); err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatal("cancel must move status and stamp CancelledAt")
	}

	// a terminal row is left untouched by a rejected transition
	ap = &models.Appointment{Status: string(StatusCompleted)}
	if err := Transition(ap, StatusScheduled, now); err == nil {
		t.Fatal("expected rejection")
	}
	if ap.Status != string(StatusCompleted) || ap.CancelledAt != nil {
		t.Fatal("rejected transition must not mutate the row")
	}
}
