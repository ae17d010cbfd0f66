package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type triageRepository struct {
	db *sqlx.DB
}

func NewTriageRepository(db *sqlx.DB) repository.TriageRepository {
	return &triageRepository{db: db}
}

// Upsert overwrites any previous triage for the same patient, triage_date
// included. A resubmission carries its own fresh timestamp.
func (r *triageRepository) Upsert(ctx context.Context, record *model.TriageRecord) error {
	if record.TriageDate.IsZero() {
		record.TriageDate = time.Now()
	}

	query := `
		INSERT INTO triage_records (
			patient_id, blood_pressure, heart_rate, respiratory_rate,
			oxygen_saturation, temperature, glucose,
			ocular_opening, verbal_response, motor_response, glasgow_total, trauma,
			pupil_reactivity, pain_level,
			main_complaints, allergies, regular_medication, notes,
			priority_level, triage_by, triage_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (patient_id) DO UPDATE SET
			blood_pressure = EXCLUDED.blood_pressure,
			heart_rate = EXCLUDED.heart_rate,
			respiratory_rate = EXCLUDED.respiratory_rate,
			oxygen_saturation = EXCLUDED.oxygen_saturation,
			temperature = EXCLUDED.temperature,
			glucose = EXCLUDED.glucose,
			ocular_opening = EXCLUDED.ocular_opening,
			verbal_response = EXCLUDED.verbal_response,
			motor_response = EXCLUDED.motor_response,
			glasgow_total = EXCLUDED.glasgow_total,
			trauma = EXCLUDED.trauma,
			pupil_reactivity = EXCLUDED.pupil_reactivity,
			pain_level = EXCLUDED.pain_level,
			main_complaints = EXCLUDED.main_complaints,
			allergies = EXCLUDED.allergies,
			regular_medication = EXCLUDED.regular_medication,
			notes = EXCLUDED.notes,
			priority_level = EXCLUDED.priority_level,
			triage_by = EXCLUDED.triage_by,
			triage_date = EXCLUDED.triage_date
	`
	_, err := r.db.ExecContext(ctx, query,
		record.PatientID,
		record.BloodPressure,
		record.HeartRate,
		record.RespiratoryRate,
		record.OxygenSaturation,
		record.Temperature,
		record.Glucose,
		record.OcularOpening,
		record.VerbalResponse,
		record.MotorResponse,
		record.GlasgowTotal,
		record.Trauma,
		record.PupilReactivity,
		record.PainLevel,
		record.MainComplaints,
		record.Allergies,
		record.RegularMedication,
		record.Notes,
		record.PriorityLevel,
		record.TriageBy,
		record.TriageDate,
	)
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to upsert triage record: %w", err))
	}
	return nil
}

func (r *triageRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.TriageRecord, error) {
	query := `SELECT * FROM triage_records WHERE patient_id = $1`
	var record model.TriageRecord
	err := r.db.GetContext(ctx, &record, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		// Absence is a normal state for a patient not yet triaged.
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to get triage record: %w", err))
	}
	return &record, nil
}

func (r *triageRepository) ListAll(ctx context.Context) ([]*model.TriageRecord, error) {
	query := `SELECT * FROM triage_records ORDER BY triage_date DESC`
	var records []*model.TriageRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to list triage records: %w", err))
	}
	return records, nil
}
