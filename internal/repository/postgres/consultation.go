package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type consultationRepository struct {
	db *sqlx.DB
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

// consultationRow mirrors the consultations table: lookup scalars plus the
// full normalized record as JSONB. The record is always total when it reaches
// this layer, so a marshal round-trip loses nothing.
type consultationRow struct {
	PatientID        uuid.UUID       `db:"patient_id"`
	DoctorName       string          `db:"doctor_name"`
	ConsultationDate time.Time       `db:"consultation_date"`
	Record           json.RawMessage `db:"record"`
}

func (r *consultationRepository) Upsert(ctx context.Context, record *model.ConsultationRecord) error {
	if record.ConsultationDate.IsZero() {
		record.ConsultationDate = time.Now()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal consultation record: %w", err)
	}

	query := `
		INSERT INTO consultations (patient_id, doctor_name, consultation_date, record)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (patient_id) DO UPDATE SET
			doctor_name = EXCLUDED.doctor_name,
			consultation_date = EXCLUDED.consultation_date,
			record = EXCLUDED.record
	`
	_, err = r.db.ExecContext(ctx, query,
		record.PatientID,
		record.DoctorName,
		record.ConsultationDate,
		payload,
	)
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to upsert consultation: %w", err))
	}
	return nil
}

func (r *consultationRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.ConsultationRecord, error) {
	query := `SELECT * FROM consultations WHERE patient_id = $1`
	var row consultationRow
	err := r.db.GetContext(ctx, &row, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to get consultation: %w", err))
	}

	var record model.ConsultationRecord
	if err := json.Unmarshal(row.Record, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal consultation record: %w", err)
	}
	return &record, nil
}
