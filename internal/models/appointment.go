package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID  uint  `gorm:"index" json:"client_id"`
	PetID     uint  `json:"pet_id"`
	ServiceID uint  `json:"service_id"`
	VetID     *uint `gorm:"index" json:"vet_id"`

	Date string `gorm:"size:10;index:idx_slot" json:"date"`
	Time string `gorm:"size:5;index:idx_slot" json:"time"`

	// Stored encrypted. The repository never decrypts; the use
	// cases do it on the way out.
	PetName   string `gorm:"size:512" json:"-"`
	OwnerName string `gorm:"size:512" json:"-"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
