package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTrauma(t *testing.T) {
	tests := []struct {
		total int
		want  TraumaSeverity
	}{
		{15, TraumaMild},
		{13, TraumaMild},
		{12, TraumaModerate},
		{9, TraumaModerate},
		{8, TraumaSevere},
		{3, TraumaSevere},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTrauma(tt.total), "glasgow %d", tt.total)
	}
}

func TestSubmitTriageRequestRecordDerivesGlasgow(t *testing.T) {
	patientID := uuid.New()
	req := &SubmitTriageRequest{
		BloodPressure:    "130/85",
		HeartRate:        95,
		RespiratoryRate:  20,
		OxygenSaturation: 94,
		Temperature:      37.2,
		OcularOpening:    3,
		VerbalResponse:   4,
		MotorResponse:    5,
		PupilReactivity:  PupilsBilateral,
		PainLevel:        6,
		MainComplaints:   "Dor abdominal",
		PriorityLevel:    PriorityHigh,
		TriageBy:         "Enf. Paula",
	}

	rec := req.Record(patientID)

	assert.Equal(t, patientID, rec.PatientID)
	assert.Equal(t, 12, rec.GlasgowTotal)
	assert.Equal(t, TraumaModerate, rec.Trauma)
	assert.Equal(t, PriorityHigh, rec.PriorityLevel)
	assert.Nil(t, rec.Glucose)
}

func TestValidStatus(t *testing.T) {
	for _, st := range AllStatuses() {
		assert.True(t, ValidStatus(st))
	}
	assert.False(t, ValidStatus(PatientStatus("discharged")))
	assert.False(t, ValidStatus(PatientStatus("")))
}
