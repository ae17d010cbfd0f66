package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, record *model.MedicationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO medication_records (
			id, patient_id, administering_nurse, nurse_name, special_instructions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.AdministeringNurse,
		record.NurseName,
		record.SpecialInstructions,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to create medication record: %w", err))
	}
	return nil
}

func (r *medicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationRecord, error) {
	query := `SELECT * FROM medication_records WHERE patient_id = $1 ORDER BY created_at DESC`
	var records []*model.MedicationRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to list medication records: %w", err))
	}
	return records, nil
}
