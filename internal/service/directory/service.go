package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
)

const (
	snapshotTTL     = 5 * time.Second
	cleanupInterval = time.Minute

	keyAll = "patients:all"
)

// Service presents the status buckets and the full patient list without
// re-deriving workflow logic. Listings come from a short-TTL cached snapshot
// that the workflow engine invalidates on every successful mutation, so reads
// reflect each mutation before the next render.
type Service struct {
	patients repository.PatientRepository
	cache    *cache.Cache
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{
		patients: patients,
		cache:    cache.New(snapshotTTL, cleanupInterval),
	}
}

// Invalidate drops the cached snapshots. Implements workflow.ProjectionInvalidator.
func (s *Service) Invalidate() {
	s.cache.Flush()
}

func (s *Service) PatientByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]*model.Patient, error) {
	if cached, ok := s.cache.Get(keyAll); ok {
		return cached.([]*model.Patient), nil
	}

	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	s.cache.SetDefault(keyAll, patients)
	return patients, nil
}

func (s *Service) ListByStatus(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	key := bucketKey(status)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Patient), nil
	}

	patients, err := s.patients.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients by status: %w", err)
	}

	s.cache.SetDefault(key, patients)
	return patients, nil
}

func bucketKey(status model.PatientStatus) string {
	return "patients:status:" + string(status)
}
