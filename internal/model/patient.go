package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientStatus is the patient's position in the care workflow.
type PatientStatus string

const (
	PatientStatusWaiting        PatientStatus = "waiting"
	PatientStatusInTriage       PatientStatus = "in-triage"
	PatientStatusInConsultation PatientStatus = "in-consultation"
	PatientStatusCompleted      PatientStatus = "completed"
)

// ValidStatus reports whether s is one of the four workflow stages.
func ValidStatus(s PatientStatus) bool {
	switch s {
	case PatientStatusWaiting, PatientStatusInTriage, PatientStatusInConsultation, PatientStatusCompleted:
		return true
	}
	return false
}

// AllStatuses lists the workflow stages in happy-path order.
func AllStatuses() []PatientStatus {
	return []PatientStatus{
		PatientStatusWaiting,
		PatientStatusInTriage,
		PatientStatusInConsultation,
		PatientStatusCompleted,
	}
}

type Patient struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	Name             string        `db:"name" json:"name"`
	BirthDate        string        `db:"birth_date" json:"birth_date"`
	Gender           string        `db:"gender" json:"gender"`
	CPF              string        `db:"cpf" json:"cpf"`
	Phone            string        `db:"phone" json:"phone"`
	Address          string        `db:"address" json:"address"`
	HealthInsurance  string        `db:"health_insurance" json:"health_insurance,omitempty"`
	EmergencyContact string        `db:"emergency_contact" json:"emergency_contact,omitempty"`
	RegistrationDate time.Time     `db:"registration_date" json:"registration_date"`
	Status           PatientStatus `db:"status" json:"status"`
}

type CreatePatientRequest struct {
	Name             string `json:"name" binding:"required,min=3"`
	BirthDate        string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	Gender           string `json:"gender" binding:"required,oneof=M F O"`
	CPF              string `json:"cpf" binding:"required,cpf"`
	Phone            string `json:"phone" binding:"required,min=10"`
	Address          string `json:"address" binding:"required,min=5"`
	HealthInsurance  string `json:"health_insurance"`
	EmergencyContact string `json:"emergency_contact"`
}

type UpdatePatientStatusRequest struct {
	Status PatientStatus `json:"status" binding:"required,oneof=waiting in-triage in-consultation completed"`
}
