package appointment

import "github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// SlotBlocking are the states that occupy a slot. Cancelled and
// completed appointments never block one.
var SlotBlocking = []Status{StatusScheduled, StatusConfirmed}

func InitialStatus() Status {
	return StatusScheduled
}

// ParseStatus rejects unknown state strings before either store is
// touched.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.ErrValidation(
		"invalid_state",
		"State must be scheduled, confirmed, cancelled or completed.",
	)
}

// ===============================
// Transitions
// ===============================

// The machine only moves forward: cancelled and completed are
// terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition validates a requested state change against the
// current state.
func CanTransition(current, next Status) error {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrValidation(
		"invalid_transition",
		"Appointment cannot move from "+string(current)+" to "+string(next)+".",
	)
}
