package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicationRecord is an administration entry; a patient may accumulate many.
type MedicationRecord struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	PatientID           uuid.UUID `db:"patient_id" json:"patient_id"`
	AdministeringNurse  string    `db:"administering_nurse" json:"administering_nurse"`
	NurseName           string    `db:"nurse_name" json:"nurse_name"`
	SpecialInstructions string    `db:"special_instructions" json:"special_instructions,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

type SubmitMedicationRequest struct {
	AdministeringNurse  string `json:"administering_nurse" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

// Nurse is a roster entry. The roster is maintained externally (config).
type Nurse struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}
