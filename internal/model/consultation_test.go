package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConsultationFillsDefaults(t *testing.T) {
	patientID := uuid.New()
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	rec := NormalizeConsultation(patientID, &SubmitConsultationRequest{
		DoctorName: "Dr. Souza",
	}, now)

	assert.Equal(t, patientID, rec.PatientID)
	assert.Equal(t, GeneralStateGood, rec.GeneralState)
	assert.Equal(t, SkinExam{Normal: true}, rec.Skin)
	assert.Equal(t, OropharynxExam{Normal: true}, rec.Oropharynx)
	assert.Equal(t, CardiovascularExam{NormalRhythm: true}, rec.Cardiovascular)
	assert.Equal(t, RespiratoryExam{Normal: true}, rec.Respiratory)
	assert.Equal(t, AbdomenExam{Flat: true}, rec.Abdomen)
	assert.Equal(t, LimbsExam{Normal: true}, rec.UpperLimbs)
	assert.Equal(t, LimbsExam{Normal: true}, rec.LowerLimbs)
	assert.Equal(t, NeurologicalExam{Lucid: true, Oriented: true}, rec.NeurologicalState)
	assert.Equal(t, 15, rec.GlasgowScore)
	assert.Equal(t, Conduct{Discharge: true}, rec.Conduct)
	assert.Equal(t, "14:30:00", rec.MedicalTime)
	assert.Equal(t, now, rec.ConsultationDate)
}

func TestNormalizeConsultationKeepsSubmittedSections(t *testing.T) {
	glasgow := 10
	rec := NormalizeConsultation(uuid.New(), &SubmitConsultationRequest{
		DoctorName:   "Dr. Souza",
		GeneralState: GeneralStateBad,
		Skin:         &SkinExam{Pallor: true},
		Abdomen:      &AbdomenExam{Globose: true, Painful: true},
		Conduct:      &Conduct{Observation: true, Hospitalization: true},
		GlasgowScore: &glasgow,
		MedicalTime:  "09:15:00",
	}, time.Now())

	assert.Equal(t, GeneralStateBad, rec.GeneralState)
	assert.Equal(t, SkinExam{Pallor: true}, rec.Skin)
	assert.Equal(t, AbdomenExam{Globose: true, Painful: true}, rec.Abdomen)
	assert.Equal(t, Conduct{Observation: true, Hospitalization: true}, rec.Conduct)
	assert.Equal(t, 10, rec.GlasgowScore)
	assert.Equal(t, "09:15:00", rec.MedicalTime)

	// Untouched sections still come from the defaults.
	assert.Equal(t, RespiratoryExam{Normal: true}, rec.Respiratory)
}

func TestNormalizeConsultationSymptomsFallback(t *testing.T) {
	rec := NormalizeConsultation(uuid.New(), &SubmitConsultationRequest{
		DoctorName: "Dr. Souza",
		Symptoms:   "Febre e tosse",
	}, time.Now())
	assert.Equal(t, "Febre e tosse", rec.MainComplaint)
	assert.Equal(t, "Febre e tosse", rec.Symptoms)

	rec = NormalizeConsultation(uuid.New(), &SubmitConsultationRequest{
		DoctorName:    "Dr. Souza",
		Symptoms:      "Febre e tosse",
		MainComplaint: "Tosse produtiva",
	}, time.Now())
	assert.Equal(t, "Tosse produtiva", rec.MainComplaint)
}

func TestDefaultConsultationIsNotMutatedByNormalize(t *testing.T) {
	rec := NormalizeConsultation(uuid.New(), &SubmitConsultationRequest{
		DoctorName: "Dr. Souza",
		Skin:       &SkinExam{Cyanosis: true},
	}, time.Now())
	require.Equal(t, SkinExam{Cyanosis: true}, rec.Skin)

	assert.Equal(t, SkinExam{Normal: true}, DefaultConsultation.Skin)
	assert.Equal(t, uuid.Nil, DefaultConsultation.PatientID)
}
