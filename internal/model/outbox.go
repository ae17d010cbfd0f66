package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is a workflow notification awaiting publication.
type OutboxEvent struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	EventType   string          `db:"event_type" json:"event_type"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Status      OutboxStatus    `db:"status" json:"status"`
	RetryCount  int             `db:"retry_count" json:"retry_count"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// Workflow event types published to staff notification channels.
const (
	EventPatientRegistered   = "PATIENT_REGISTERED"
	EventTriageStarted       = "TRIAGE_STARTED"
	EventTriageCompleted     = "TRIAGE_COMPLETED"
	EventConsultationDone    = "CONSULTATION_COMPLETED"
	EventMedicationRecorded  = "MEDICATION_RECORDED"
	EventPatientStatusEdited = "PATIENT_STATUS_EDITED"
)
