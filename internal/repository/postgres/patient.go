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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, name, birth_date, gender, cpf, phone, address,
			health_insurance, emergency_contact, registration_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	if patient.RegistrationDate.IsZero() {
		patient.RegistrationDate = time.Now()
	}
	if patient.Status == "" {
		patient.Status = model.PatientStatusWaiting
	}

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.BirthDate,
		patient.Gender,
		patient.CPF,
		patient.Phone,
		patient.Address,
		patient.HealthInsurance,
		patient.EmergencyContact,
		patient.RegistrationDate,
		patient.Status,
	)
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to create patient: %w", err))
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to get patient: %w", err))
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}

func (r *patientRepository) ListByStatus(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE status = $1 ORDER BY registration_date DESC`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, status); err != nil {
		return nil, apperrors.Backend(fmt.Errorf("failed to list patients by status: %w", err))
	}
	return patients, nil
}

func (r *patientRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PatientStatus) error {
	query := `UPDATE patients SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to update patient status: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Backend(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}
