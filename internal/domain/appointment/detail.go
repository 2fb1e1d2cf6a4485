package appointment

import "time"

// DetailStatePending is the document-side mirror set at creation,
// before the first state change reaches the document.
const DetailStatePending = "pending"

// ClinicalDetail is the extensible narrative document attached 1:1
// to an appointment row, keyed by the row id in string form. The
// document store applies no schema; Extra keeps whatever fields a
// newer client wrote without a migration.
type ClinicalDetail struct {
	AppointmentID string `bson:"appointmentId" json:"appointment_id"`

	ClientID string `bson:"clientId" json:"client_id"`
	PetID    string `bson:"petId" json:"pet_id"`

	Reason          string   `bson:"reason" json:"reason"`
	Symptoms        string   `bson:"symptoms" json:"symptoms"`
	PriorDiagnosis  string   `bson:"priorDiagnosis" json:"prior_diagnosis"`
	PriorTreatments []string `bson:"priorTreatments" json:"prior_treatments"`
	AdditionalNotes string   `bson:"additionalNotes" json:"additional_notes"`

	State                string     `bson:"state" json:"state"`
	Attended             bool       `bson:"attended" json:"attended"`
	ActualCompletionDate *time.Time `bson:"actualCompletionDate,omitempty" json:"actual_completion_date,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

// DetailPatch is a partial document update. Keys outside the fields
// above pass through to the store unchanged.
type DetailPatch map[string]interface{}
