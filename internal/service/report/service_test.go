package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

func seedPatient(t *testing.T, store *repository.Store, status model.PatientStatus) *model.Patient {
	t.Helper()
	p := &model.Patient{
		Name:      "Paciente Teste",
		BirthDate: "1985-05-20",
		CPF:       "222.333.444-55",
		Status:    status,
	}
	require.NoError(t, store.Patients.Create(context.Background(), p))
	return p
}

func TestSummaryTallies(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store)
	ctx := context.Background()

	seedPatient(t, store, model.PatientStatusWaiting)
	seedPatient(t, store, model.PatientStatusWaiting)
	seedPatient(t, store, model.PatientStatusInConsultation)
	triaged := seedPatient(t, store, model.PatientStatusCompleted)

	require.NoError(t, store.Triages.Upsert(ctx, &model.TriageRecord{
		PatientID:     triaged.ID,
		PriorityLevel: model.PriorityHigh,
	}))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalPatients)
	assert.Equal(t, 2, summary.ByStatus[model.PatientStatusWaiting])
	assert.Equal(t, 0, summary.ByStatus[model.PatientStatusInTriage])
	assert.Equal(t, 1, summary.ByStatus[model.PatientStatusInConsultation])
	assert.Equal(t, 1, summary.ByStatus[model.PatientStatusCompleted])
	assert.Equal(t, 1, summary.ByPriority[model.PriorityHigh])
}

func TestSummaryEmptyStoreHasAllBuckets(t *testing.T) {
	svc := NewService(memory.NewStore())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalPatients)
	for _, st := range model.AllStatuses() {
		_, ok := summary.ByStatus[st]
		assert.True(t, ok, "missing bucket %s", st)
	}
}

func TestPatientSummaryPDF(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store)
	ctx := context.Background()

	patient := seedPatient(t, store, model.PatientStatusCompleted)
	require.NoError(t, store.Triages.Upsert(ctx, &model.TriageRecord{
		PatientID:      patient.ID,
		BloodPressure:  "120/80",
		GlasgowTotal:   15,
		Trauma:         model.TraumaMild,
		PriorityLevel:  model.PriorityMedium,
		TriageBy:       "Enf. Paula",
		MainComplaints: "Dor torácica",
	}))
	require.NoError(t, store.Consultations.Upsert(ctx, &model.ConsultationRecord{
		PatientID:  patient.ID,
		DoctorName: "Dr. Souza",
		Diagnosis:  "Dor muscular",
	}))

	pdf, err := svc.PatientSummaryPDF(ctx, patient.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPatientSummaryPDFMissingPatient(t *testing.T) {
	svc := NewService(memory.NewStore())

	_, err := svc.PatientSummaryPDF(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
