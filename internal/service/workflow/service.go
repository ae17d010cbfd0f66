package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
	"github.com/hospitalvida/atendimento-api/pkg/metrics"
)

// ProjectionInvalidator is notified after every successful mutation so read
// projections can refresh before the next render.
type ProjectionInvalidator interface {
	Invalidate()
}

// Service is the workflow engine: it maps stage submissions to record writes
// and status transitions. Each submission writes at most one record and then
// transitions the status as a separate, visible step; a failed write leaves
// the patient's pre-submission status untouched.
type Service struct {
	patients      repository.PatientRepository
	triages       repository.TriageRepository
	consultations repository.ConsultationRepository
	medications   repository.MedicationRepository
	roster        map[string]string
	projections   ProjectionInvalidator
	metrics       *metrics.Metrics
}

func NewService(store *repository.Store, nurses []model.Nurse, m *metrics.Metrics) *Service {
	roster := make(map[string]string, len(nurses))
	for _, n := range nurses {
		roster[n.ID] = n.Name
	}
	return &Service{
		patients:      store.Patients,
		triages:       store.Triages,
		consultations: store.Consultations,
		medications:   store.Medications,
		roster:        roster,
		metrics:       m,
	}
}

// SetProjections wires the read-side invalidation hook.
func (s *Service) SetProjections(p ProjectionInvalidator) {
	s.projections = p
}

// RegisterPatient performs intake. Always allowed; the new patient enters the
// queue with status waiting.
func (s *Service) RegisterPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		ID:               uuid.New(),
		Name:             req.Name,
		BirthDate:        req.BirthDate,
		Gender:           req.Gender,
		CPF:              req.CPF,
		Phone:            req.Phone,
		Address:          req.Address,
		HealthInsurance:  req.HealthInsurance,
		EmergencyContact: req.EmergencyContact,
		RegistrationDate: time.Now(),
		Status:           model.PatientStatusWaiting,
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	s.invalidate()
	return patient, nil
}

// BeginTriage moves a waiting patient to in-triage. It happens when the
// triage form is opened, not only on submit, and is idempotent for a patient
// already in triage. Other stages are left untouched.
func (s *Service) BeginTriage(ctx context.Context, patientID uuid.UUID) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if patient.Status != model.PatientStatusWaiting {
		return patient, nil
	}

	if err := s.transition(ctx, patient, model.PatientStatusInTriage); err != nil {
		return nil, err
	}
	return patient, nil
}

// SubmitTriage stores the nurse assessment and advances the patient to
// in-consultation. Glasgow total and trauma label are derived here, never
// taken from the caller. Resubmission overwrites the previous record.
func (s *Service) SubmitTriage(ctx context.Context, patientID uuid.UUID, req *model.SubmitTriageRequest) (*model.TriageRecord, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record := req.Record(patientID)
	record.TriageDate = time.Now()

	if err := s.triages.Upsert(ctx, record); err != nil {
		s.fail("triage")
		return nil, fmt.Errorf("failed to store triage: %w", err)
	}

	if err := s.transition(ctx, patient, model.PatientStatusInConsultation); err != nil {
		return nil, err
	}
	return record, nil
}

// SubmitConsultation stores the physician's exam and completes the patient.
// A partial payload is merged over the canonical defaults so the persisted
// record is always total.
func (s *Service) SubmitConsultation(ctx context.Context, patientID uuid.UUID, req *model.SubmitConsultationRequest) (*model.ConsultationRecord, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record := model.NormalizeConsultation(patientID, req, time.Now())

	if err := s.consultations.Upsert(ctx, record); err != nil {
		s.fail("consultation")
		return nil, fmt.Errorf("failed to store consultation: %w", err)
	}

	if err := s.transition(ctx, patient, model.PatientStatusCompleted); err != nil {
		return nil, err
	}
	return record, nil
}

// SubmitMedication records an administration for a completed patient.
// Medication is prescribed in consultation: administering without a
// consultation on file is a usage error, not a silent append.
func (s *Service) SubmitMedication(ctx context.Context, patientID uuid.UUID, req *model.SubmitMedicationRequest) (*model.MedicationRecord, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if patient.Status != model.PatientStatusCompleted {
		return nil, apperrors.State("patient has not completed consultation")
	}

	consultation, err := s.consultations.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, apperrors.State("consultation data not found")
	}

	nurseName, ok := s.roster[req.AdministeringNurse]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("nurse %q is not on the roster", req.AdministeringNurse), nil)
	}

	record := &model.MedicationRecord{
		ID:                  uuid.New(),
		PatientID:           patientID,
		AdministeringNurse:  req.AdministeringNurse,
		NurseName:           nurseName,
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           time.Now(),
	}

	if err := s.medications.Create(ctx, record); err != nil {
		s.fail("medication")
		return nil, fmt.Errorf("failed to store medication: %w", err)
	}

	s.invalidate()
	return record, nil
}

// SetStatus is the administrative escape hatch: an idempotent overwrite with
// no stage-sequence enforcement.
func (s *Service) SetStatus(ctx context.Context, patientID uuid.UUID, status model.PatientStatus) error {
	if !model.ValidStatus(status) {
		return apperrors.Validation(fmt.Sprintf("invalid status %q", status), nil)
	}
	if err := s.patients.UpdateStatus(ctx, patientID, status); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Query helpers: pure reads, never mutate status.

func (s *Service) PatientByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *Service) PatientsByStage(ctx context.Context, stage model.PatientStatus) ([]*model.Patient, error) {
	if !model.ValidStatus(stage) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid status %q", stage), nil)
	}
	return s.patients.ListByStatus(ctx, stage)
}

func (s *Service) TriageOf(ctx context.Context, patientID uuid.UUID) (*model.TriageRecord, error) {
	return s.triages.GetByPatient(ctx, patientID)
}

func (s *Service) ConsultationOf(ctx context.Context, patientID uuid.UUID) (*model.ConsultationRecord, error) {
	return s.consultations.GetByPatient(ctx, patientID)
}

func (s *Service) MedicationsOf(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationRecord, error) {
	return s.medications.ListByPatient(ctx, patientID)
}

// Roster returns the nurse id→name mapping for UI consumption.
func (s *Service) Roster() map[string]string {
	roster := make(map[string]string, len(s.roster))
	for id, name := range s.roster {
		roster[id] = name
	}
	return roster
}

func (s *Service) transition(ctx context.Context, patient *model.Patient, to model.PatientStatus) error {
	from := patient.Status
	if err := s.patients.UpdateStatus(ctx, patient.ID, to); err != nil {
		return fmt.Errorf("failed to transition patient %s to %s: %w", patient.ID, to, err)
	}
	patient.Status = to

	if s.metrics != nil {
		s.metrics.WorkflowTransitions.WithLabelValues(string(from), string(to)).Inc()
	}
	s.invalidate()
	return nil
}

func (s *Service) fail(stage string) {
	if s.metrics != nil {
		s.metrics.WorkflowFailures.WithLabelValues(stage).Inc()
	}
}

func (s *Service) invalidate() {
	if s.projections != nil {
		s.projections.Invalidate()
	}
}
