package dto

import (
	"time"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	uc "github.com/aaafasf/PETPOCKEBACKEND1/internal/usecase/appointment"
)

type AppointmentDTO struct {
	ID        uint  `json:"id"`
	ClientID  uint  `json:"client_id"`
	PetID     uint  `json:"pet_id"`
	ServiceID uint  `json:"service_id"`
	VetID     *uint `json:"vet_id"`

	Date string `json:"date"`
	Time string `json:"time"`

	PetName   string `json:"pet_name"`
	OwnerName string `json:"owner_name"`

	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Detail *domain.ClinicalDetail `json:"detail"`
}

func FromView(v *uc.AppointmentView) AppointmentDTO {
	ap := v.Appointment
	return AppointmentDTO{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		PetID:       ap.PetID,
		ServiceID:   ap.ServiceID,
		VetID:       ap.VetID,
		Date:        ap.Date,
		Time:        ap.Time,
		PetName:     v.PetName,
		OwnerName:   v.OwnerName,
		Status:      ap.Status,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
		Detail:      v.Detail,
	}
}
