package model

import (
	"time"

	"github.com/google/uuid"
)

// PriorityLevel is chosen by the triage professional, not derived from vitals.
type PriorityLevel string

const (
	PriorityLow       PriorityLevel = "low"
	PriorityMedium    PriorityLevel = "medium"
	PriorityHigh      PriorityLevel = "high"
	PriorityEmergency PriorityLevel = "emergency"
)

// PupilReactivity describes pupillary response findings.
type PupilReactivity string

const (
	PupilsNone       PupilReactivity = "none"
	PupilsUnilateral PupilReactivity = "unilateral"
	PupilsBilateral  PupilReactivity = "bilateral"
)

// TraumaSeverity is the Glasgow-derived classification.
type TraumaSeverity string

const (
	TraumaMild     TraumaSeverity = "mild"
	TraumaModerate TraumaSeverity = "moderate"
	TraumaSevere   TraumaSeverity = "severe"
)

// ClassifyTrauma maps a Glasgow total (3-15) to its severity label.
func ClassifyTrauma(glasgowTotal int) TraumaSeverity {
	switch {
	case glasgowTotal >= 13:
		return TraumaMild
	case glasgowTotal >= 9:
		return TraumaModerate
	default:
		return TraumaSevere
	}
}

// TriageRecord holds the nurse assessment, one active record per patient.
type TriageRecord struct {
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`

	BloodPressure    string   `db:"blood_pressure" json:"blood_pressure"`
	HeartRate        int      `db:"heart_rate" json:"heart_rate"`
	RespiratoryRate  int      `db:"respiratory_rate" json:"respiratory_rate"`
	OxygenSaturation int      `db:"oxygen_saturation" json:"oxygen_saturation"`
	Temperature      float64  `db:"temperature" json:"temperature"`
	Glucose          *float64 `db:"glucose" json:"glucose,omitempty"`

	OcularOpening  int            `db:"ocular_opening" json:"ocular_opening"`
	VerbalResponse int            `db:"verbal_response" json:"verbal_response"`
	MotorResponse  int            `db:"motor_response" json:"motor_response"`
	GlasgowTotal   int            `db:"glasgow_total" json:"glasgow_total"`
	Trauma         TraumaSeverity `db:"trauma" json:"trauma"`

	PupilReactivity PupilReactivity `db:"pupil_reactivity" json:"pupil_reactivity"`
	PainLevel       int             `db:"pain_level" json:"pain_level"`

	MainComplaints     string `db:"main_complaints" json:"main_complaints"`
	Allergies          string `db:"allergies" json:"allergies,omitempty"`
	RegularMedication  string `db:"regular_medication" json:"regular_medication,omitempty"`
	Notes              string `db:"notes" json:"notes,omitempty"`

	PriorityLevel PriorityLevel `db:"priority_level" json:"priority_level"`
	TriageBy      string        `db:"triage_by" json:"triage_by"`
	TriageDate    time.Time     `db:"triage_date" json:"triage_date"`
}

// ComputeGlasgow fills GlasgowTotal and Trauma from the three sub-scores.
func (t *TriageRecord) ComputeGlasgow() {
	t.GlasgowTotal = t.OcularOpening + t.VerbalResponse + t.MotorResponse
	t.Trauma = ClassifyTrauma(t.GlasgowTotal)
}

type SubmitTriageRequest struct {
	BloodPressure    string   `json:"blood_pressure" binding:"required"`
	HeartRate        int      `json:"heart_rate" binding:"required,gte=40,lte=200"`
	RespiratoryRate  int      `json:"respiratory_rate" binding:"required,gte=10,lte=40"`
	OxygenSaturation int      `json:"oxygen_saturation" binding:"required,gte=70,lte=100"`
	Temperature      float64  `json:"temperature" binding:"required,gte=34,lte=42"`
	Glucose          *float64 `json:"glucose" binding:"omitempty,gte=40,lte=500"`

	OcularOpening  int `json:"ocular_opening" binding:"required,gte=1,lte=4"`
	VerbalResponse int `json:"verbal_response" binding:"required,gte=1,lte=5"`
	MotorResponse  int `json:"motor_response" binding:"required,gte=1,lte=6"`

	PupilReactivity PupilReactivity `json:"pupil_reactivity" binding:"required,oneof=none unilateral bilateral"`
	PainLevel       int             `json:"pain_level" binding:"gte=0,lte=10"`

	MainComplaints    string `json:"main_complaints" binding:"required,min=3"`
	Allergies         string `json:"allergies"`
	RegularMedication string `json:"regular_medication"`
	Notes             string `json:"notes"`

	PriorityLevel PriorityLevel `json:"priority_level" binding:"required,oneof=low medium high emergency"`
	TriageBy      string        `json:"triage_by" binding:"required,min=3"`
}

// Record builds a TriageRecord from the request with the Glasgow fields derived.
func (r *SubmitTriageRequest) Record(patientID uuid.UUID) *TriageRecord {
	rec := &TriageRecord{
		PatientID:         patientID,
		BloodPressure:     r.BloodPressure,
		HeartRate:         r.HeartRate,
		RespiratoryRate:   r.RespiratoryRate,
		OxygenSaturation:  r.OxygenSaturation,
		Temperature:       r.Temperature,
		Glucose:           r.Glucose,
		OcularOpening:     r.OcularOpening,
		VerbalResponse:    r.VerbalResponse,
		MotorResponse:     r.MotorResponse,
		PupilReactivity:   r.PupilReactivity,
		PainLevel:         r.PainLevel,
		MainComplaints:    r.MainComplaints,
		Allergies:         r.Allergies,
		RegularMedication: r.RegularMedication,
		Notes:             r.Notes,
		PriorityLevel:     r.PriorityLevel,
		TriageBy:          r.TriageBy,
	}
	rec.ComputeGlasgow()
	return rec
}
