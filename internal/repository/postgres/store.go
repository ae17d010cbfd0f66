package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/hospitalvida/atendimento-api/internal/repository"
)

// NewStore bundles the Postgres-backed repositories.
func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Patients:      NewPatientRepository(db),
		Triages:       NewTriageRepository(db),
		Consultations: NewConsultationRepository(db),
		Medications:   NewMedicationRepository(db),
		Users:         NewUserRepository(db),
		Outbox:        NewOutboxRepository(db),
	}
}
