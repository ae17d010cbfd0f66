// Package memory implements the clinical record store with process-lifetime
// maps. It is the storage driver used in development and in tests; semantics
// match the Postgres driver, including last-write-wins upserts and ordering
// of status-filtered listings.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

// NewStore bundles the in-memory repositories over one shared state.
func NewStore() *repository.Store {
	s := &state{
		patients:      make(map[uuid.UUID]model.Patient),
		triages:       make(map[uuid.UUID]model.TriageRecord),
		consultations: make(map[uuid.UUID]model.ConsultationRecord),
		medications:   make(map[uuid.UUID][]model.MedicationRecord),
		users:         make(map[uuid.UUID]model.User),
	}
	return &repository.Store{
		Patients:      &patientRepository{state: s},
		Triages:       &triageRepository{state: s},
		Consultations: &consultationRepository{state: s},
		Medications:   &medicationRepository{state: s},
		Users:         &userRepository{state: s},
		Outbox:        &outboxRepository{state: s},
	}
}

type state struct {
	mu            sync.RWMutex
	patients      map[uuid.UUID]model.Patient
	triages       map[uuid.UUID]model.TriageRecord
	consultations map[uuid.UUID]model.ConsultationRecord
	medications   map[uuid.UUID][]model.MedicationRecord
	users         map[uuid.UUID]model.User
	outbox        []model.OutboxEvent
}

type patientRepository struct {
	*state
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	if patient.RegistrationDate.IsZero() {
		patient.RegistrationDate = time.Now()
	}
	if patient.Status == "" {
		patient.Status = model.PatientStatusWaiting
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return &patient, nil
}

func (r *patientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		p := p
		patients = append(patients, &p)
	}
	return patients, nil
}

func (r *patientRepository) ListByStatus(_ context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var patients []*model.Patient
	for _, p := range r.patients {
		if p.Status == status {
			p := p
			patients = append(patients, &p)
		}
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].RegistrationDate.After(patients[j].RegistrationDate)
	})
	return patients, nil
}

func (r *patientRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.PatientStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.patients[id]
	if !ok {
		return apperrors.NotFound("patient", nil)
	}
	patient.Status = status
	r.patients[id] = patient
	return nil
}

type triageRepository struct {
	*state
}

func (r *triageRepository) Upsert(_ context.Context, record *model.TriageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.TriageDate.IsZero() {
		record.TriageDate = time.Now()
	}
	r.triages[record.PatientID] = *record
	return nil
}

func (r *triageRepository) GetByPatient(_ context.Context, patientID uuid.UUID) (*model.TriageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.triages[patientID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *triageRepository) ListAll(_ context.Context) ([]*model.TriageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.TriageRecord, 0, len(r.triages))
	for _, t := range r.triages {
		t := t
		records = append(records, &t)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TriageDate.After(records[j].TriageDate)
	})
	return records, nil
}

type consultationRepository struct {
	*state
}

func (r *consultationRepository) Upsert(_ context.Context, record *model.ConsultationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ConsultationDate.IsZero() {
		record.ConsultationDate = time.Now()
	}
	r.consultations[record.PatientID] = *record
	return nil
}

func (r *consultationRepository) GetByPatient(_ context.Context, patientID uuid.UUID) (*model.ConsultationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.consultations[patientID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

type medicationRepository struct {
	*state
}

func (r *medicationRepository) Create(_ context.Context, record *model.MedicationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.medications[record.PatientID] = append(r.medications[record.PatientID], *record)
	return nil
}

func (r *medicationRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.MedicationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.medications[patientID]
	records := make([]*model.MedicationRecord, 0, len(stored))
	for _, m := range stored {
		m := m
		records = append(records, &m)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

type userRepository struct {
	*state
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *userRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	user.Role = role
	r.users[id] = user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user", nil)
	}
	delete(r.users, id)
	return nil
}

type outboxRepository struct {
	*state
}

func (r *outboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.Status = model.OutboxStatusPending
	r.outbox = append(r.outbox, *event)
	return nil
}

func (r *outboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []*model.OutboxEvent
	for i := range r.outbox {
		if len(events) == limit {
			break
		}
		if r.outbox[i].Status == model.OutboxStatusPending {
			e := r.outbox[i]
			events = append(events, &e)
		}
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(_ context.Context, id uuid.UUID) error {
	return r.markStatus(id, model.OutboxStatusProcessed)
}

func (r *outboxRepository) MarkFailed(_ context.Context, id uuid.UUID) error {
	return r.markStatus(id, model.OutboxStatusFailed)
}

func (r *outboxRepository) markStatus(id uuid.UUID, status model.OutboxStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.outbox {
		if r.outbox[i].ID == id {
			r.outbox[i].Status = status
			if status == model.OutboxStatusProcessed {
				now := time.Now()
				r.outbox[i].ProcessedAt = &now
			} else {
				r.outbox[i].RetryCount++
			}
			return nil
		}
	}
	return apperrors.NotFound("outbox event", nil)
}
