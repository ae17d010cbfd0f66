package model

import (
	"time"

	"github.com/google/uuid"
)

// GeneralState is the physician's overall impression.
type GeneralState string

const (
	GeneralStateGood    GeneralState = "BEG"
	GeneralStateRegular GeneralState = "REG"
	GeneralStateBad     GeneralState = "MEG"
)

// Body-system findings. Each section's canonical "normal" flag defaults true,
// everything else defaults false.

type SkinExam struct {
	Normal    bool `json:"normal"`
	Pallor    bool `json:"pallor"`
	Jaundice  bool `json:"jaundice"`
	Cyanosis  bool `json:"cyanosis"`
	NoChanges bool `json:"no_changes"`
}

type OropharynxExam struct {
	Normal  bool `json:"normal"`
	Altered bool `json:"altered"`
}

type CardiovascularExam struct {
	NormalRhythm bool `json:"normal_rhythm"`
	Altered      bool `json:"altered"`
}

type RespiratoryExam struct {
	Normal  bool `json:"normal"`
	Altered bool `json:"altered"`
}

type AbdomenExam struct {
	Flat      bool `json:"flat"`
	Globose   bool `json:"globose"`
	Excavated bool `json:"excavated"`
	Flaccid   bool `json:"flaccid"`
	Tense     bool `json:"tense"`
	Painful   bool `json:"painful"`
}

type LimbsExam struct {
	Normal  bool `json:"normal"`
	Altered bool `json:"altered"`
}

type NeurologicalExam struct {
	Lucid       bool `json:"lucid"`
	Oriented    bool `json:"oriented"`
	Disoriented bool `json:"disoriented"`
	Drowsy      bool `json:"drowsy"`
	Comatose    bool `json:"comatose"`
}

// Conduct is a multi-select outcome, not an enum.
type Conduct struct {
	Discharge       bool `json:"discharge"`
	Observation     bool `json:"observation"`
	Hospitalization bool `json:"hospitalization"`
	MedicalLeave    bool `json:"medical_leave"`
}

// ConsultationRecord is the physician's exam, one active record per patient.
// Sub-objects are always total: Normalize fills every section before persistence.
type ConsultationRecord struct {
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`

	HasAllergies          bool   `json:"has_allergies"`
	Allergies             string `json:"allergies"`
	MainComplaint         string `json:"main_complaint"`
	CurrentDiseaseHistory string `json:"current_disease_history"`

	HasHypertension    bool   `json:"has_hypertension"`
	HasDiabetes        bool   `json:"has_diabetes"`
	DiabetesType       string `json:"diabetes_type"`
	HasDyslipidemia    bool   `json:"has_dyslipidemia"`
	HasSmoking         bool   `json:"has_smoking"`
	HasPregnancy       bool   `json:"has_pregnancy"`
	OtherComorbidities string `json:"other_comorbidities"`

	ContinuousMedication string       `json:"continuous_medication"`
	GeneralState         GeneralState `json:"general_state"`

	Skin              SkinExam           `json:"skin"`
	Oropharynx        OropharynxExam     `json:"oropharynx"`
	Cardiovascular    CardiovascularExam `json:"cardiovascular"`
	Respiratory       RespiratoryExam    `json:"respiratory"`
	Abdomen           AbdomenExam        `json:"abdomen"`
	UpperLimbs        LimbsExam          `json:"upper_limbs"`
	LowerLimbs        LimbsExam          `json:"lower_limbs"`
	NeurologicalState NeurologicalExam   `json:"neurological_state"`

	ActiveBleedingVisible bool   `json:"active_bleeding_visible"`
	GlasgowScore          int    `json:"glasgow_score"`
	BloodPressure         string `json:"blood_pressure"`
	HeartRate             string `json:"heart_rate"`
	RespiratoryRate       string `json:"respiratory_rate"`

	CID          string  `json:"cid"`
	Conduct      Conduct `json:"conduct"`
	Prescription string  `json:"prescription"`

	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Exams     string `json:"exams"`
	Notes     string `json:"notes"`
	FollowUp  string `json:"follow_up"`

	DoctorName        string    `json:"doctor_name"`
	NursingTechnician string    `json:"nursing_technician"`
	MedicalTime       string    `json:"medical_time"`
	ConsultationDate  time.Time `json:"consultation_date"`
}

// DefaultConsultation is the canonical defaults constant: the record persisted
// when the physician submits nothing beyond their name. Tests assert against it.
var DefaultConsultation = ConsultationRecord{
	GeneralState: GeneralStateGood,
	Skin:         SkinExam{Normal: true},
	Oropharynx:   OropharynxExam{Normal: true},
	Cardiovascular: CardiovascularExam{
		NormalRhythm: true,
	},
	Respiratory: RespiratoryExam{Normal: true},
	Abdomen:     AbdomenExam{Flat: true},
	UpperLimbs:  LimbsExam{Normal: true},
	LowerLimbs:  LimbsExam{Normal: true},
	NeurologicalState: NeurologicalExam{
		Lucid:    true,
		Oriented: true,
	},
	GlasgowScore: 15,
	Conduct:      Conduct{Discharge: true},
}

// SubmitConsultationRequest is a partial payload: only the doctor's name is
// mandatory. Sub-objects are pointers so an absent section can be told apart
// from an all-false one.
type SubmitConsultationRequest struct {
	HasAllergies          bool   `json:"has_allergies"`
	Allergies             string `json:"allergies"`
	MainComplaint         string `json:"main_complaint"`
	Symptoms              string `json:"symptoms"`
	CurrentDiseaseHistory string `json:"current_disease_history"`

	HasHypertension    bool   `json:"has_hypertension"`
	HasDiabetes        bool   `json:"has_diabetes"`
	DiabetesType       string `json:"diabetes_type"`
	HasDyslipidemia    bool   `json:"has_dyslipidemia"`
	HasSmoking         bool   `json:"has_smoking"`
	HasPregnancy       bool   `json:"has_pregnancy"`
	OtherComorbidities string `json:"other_comorbidities"`

	ContinuousMedication string       `json:"continuous_medication"`
	GeneralState         GeneralState `json:"general_state" binding:"omitempty,oneof=BEG REG MEG"`

	Skin              *SkinExam           `json:"skin"`
	Oropharynx        *OropharynxExam     `json:"oropharynx"`
	Cardiovascular    *CardiovascularExam `json:"cardiovascular"`
	Respiratory       *RespiratoryExam    `json:"respiratory"`
	Abdomen           *AbdomenExam        `json:"abdomen"`
	UpperLimbs        *LimbsExam          `json:"upper_limbs"`
	LowerLimbs        *LimbsExam          `json:"lower_limbs"`
	NeurologicalState *NeurologicalExam   `json:"neurological_state"`

	ActiveBleedingVisible bool   `json:"active_bleeding_visible"`
	GlasgowScore          *int   `json:"glasgow_score" binding:"omitempty,gte=3,lte=15"`
	BloodPressure         string `json:"blood_pressure"`
	HeartRate             string `json:"heart_rate"`
	RespiratoryRate       string `json:"respiratory_rate"`

	CID          string   `json:"cid"`
	Conduct      *Conduct `json:"conduct"`
	Prescription string   `json:"prescription"`

	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Exams     string `json:"exams"`
	Notes     string `json:"notes"`
	FollowUp  string `json:"follow_up"`

	DoctorName        string `json:"doctor_name" binding:"required,min=3"`
	NursingTechnician string `json:"nursing_technician"`
	MedicalTime       string `json:"medical_time"`
}

// NormalizeConsultation merges a partial submission over DefaultConsultation,
// producing a total record. The legacy `symptoms` field doubles as the main
// complaint when the newer field is absent.
func NormalizeConsultation(patientID uuid.UUID, req *SubmitConsultationRequest, now time.Time) *ConsultationRecord {
	rec := DefaultConsultation
	rec.PatientID = patientID

	rec.HasAllergies = req.HasAllergies
	rec.Allergies = req.Allergies
	rec.MainComplaint = req.MainComplaint
	if rec.MainComplaint == "" {
		rec.MainComplaint = req.Symptoms
	}
	rec.Symptoms = req.Symptoms
	rec.CurrentDiseaseHistory = req.CurrentDiseaseHistory

	rec.HasHypertension = req.HasHypertension
	rec.HasDiabetes = req.HasDiabetes
	rec.DiabetesType = req.DiabetesType
	rec.HasDyslipidemia = req.HasDyslipidemia
	rec.HasSmoking = req.HasSmoking
	rec.HasPregnancy = req.HasPregnancy
	rec.OtherComorbidities = req.OtherComorbidities
	rec.ContinuousMedication = req.ContinuousMedication

	if req.GeneralState != "" {
		rec.GeneralState = req.GeneralState
	}
	if req.Skin != nil {
		rec.Skin = *req.Skin
	}
	if req.Oropharynx != nil {
		rec.Oropharynx = *req.Oropharynx
	}
	if req.Cardiovascular != nil {
		rec.Cardiovascular = *req.Cardiovascular
	}
	if req.Respiratory != nil {
		rec.Respiratory = *req.Respiratory
	}
	if req.Abdomen != nil {
		rec.Abdomen = *req.Abdomen
	}
	if req.UpperLimbs != nil {
		rec.UpperLimbs = *req.UpperLimbs
	}
	if req.LowerLimbs != nil {
		rec.LowerLimbs = *req.LowerLimbs
	}
	if req.NeurologicalState != nil {
		rec.NeurologicalState = *req.NeurologicalState
	}
	if req.Conduct != nil {
		rec.Conduct = *req.Conduct
	}
	if req.GlasgowScore != nil {
		rec.GlasgowScore = *req.GlasgowScore
	}

	rec.ActiveBleedingVisible = req.ActiveBleedingVisible
	rec.BloodPressure = req.BloodPressure
	rec.HeartRate = req.HeartRate
	rec.RespiratoryRate = req.RespiratoryRate
	rec.CID = req.CID
	rec.Prescription = req.Prescription
	rec.Diagnosis = req.Diagnosis
	rec.Treatment = req.Treatment
	rec.Exams = req.Exams
	rec.Notes = req.Notes
	rec.FollowUp = req.FollowUp

	rec.DoctorName = req.DoctorName
	rec.NursingTechnician = req.NursingTechnician
	rec.MedicalTime = req.MedicalTime
	if rec.MedicalTime == "" {
		rec.MedicalTime = now.Format("15:04:05")
	}
	rec.ConsultationDate = now

	return &rec
}
