package appointment

import (
	"context"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/models"
)

// Repository is the canonical relational store. Reads return PII
// columns still encrypted; decryption belongs to the use cases.
type Repository interface {
	Create(ctx context.Context, ap *models.Appointment) error

	// Update applies a partial change and reports not-found when
	// the row is missing.
	Update(ctx context.Context, id uint, fields map[string]interface{}) error

	// Delete removes a row. Cancellation never deletes; this
	// exists only as the create saga's compensating action.
	Delete(ctx context.Context, id uint) error

	// FindByID returns (nil, nil) when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)

	// FindByClient lists a client's appointments, optionally
	// filtered by state ("" means all), newest first.
	FindByClient(ctx context.Context, clientID uint, state Status) ([]models.Appointment, error)

	// FindByRange lists appointments over an optional inclusive
	// date range ("" disables a bound), restricted to a state set
	// (nil means all), in calendar order (date, then time).
	FindByRange(ctx context.Context, from, to string, states []Status) ([]models.Appointment, error)

	FindBySlot(ctx context.Context, date, hour string, states []Status) ([]models.Appointment, error)
	CountBySlot(ctx context.Context, date, hour string, states []Status) (int64, error)

	// CountByState aggregates rows per state over an optional
	// inclusive date range ("" disables a bound).
	CountByState(ctx context.Context, from, to string) (map[Status]int64, error)
}

// DetailStore is the document side. One document per appointment;
// the use cases are the sole guarantor of that pairing.
type DetailStore interface {
	Create(ctx context.Context, d *ClinicalDetail) error

	// FindByAppointmentID returns (nil, nil) when absent.
	FindByAppointmentID(ctx context.Context, appointmentID string) (*ClinicalDetail, error)

	// Upsert merges the patch into the document, creating it if
	// absent. Unknown patch keys are stored as-is.
	Upsert(ctx context.Context, appointmentID string, patch DetailPatch) error

	DeleteByAppointmentID(ctx context.Context, appointmentID string) error
}

// Codec is the field-level encryption applied to PII columns before
// they reach the relational store.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(value string) string
}
