package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospitalvida/atendimento-api/internal/model"
)

// All repository interfaces in one file.
//
// Lookup methods return (nil, nil) when the record does not exist and the
// absence is a normal workflow state (a patient not yet triaged); they return
// an error only for backend failures. Patient lookups by id are the exception:
// a missing patient is a not-found error.
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		ListByStatus(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.PatientStatus) error
	}

	TriageRepository interface {
		Upsert(ctx context.Context, record *model.TriageRecord) error
		GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.TriageRecord, error)
		ListAll(ctx context.Context) ([]*model.TriageRecord, error)
	}

	ConsultationRepository interface {
		Upsert(ctx context.Context, record *model.ConsultationRecord) error
		GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.ConsultationRecord, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, record *model.MedicationRecord) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationRecord, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		List(ctx context.Context) ([]*model.User, error)
		UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID) error
	}
)

// Store bundles the clinical record repositories behind one swappable handle.
type Store struct {
	Patients      PatientRepository
	Triages       TriageRepository
	Consultations ConsultationRepository
	Medications   MedicationRepository
	Users         UserRepository
	Outbox        OutboxRepository
}
