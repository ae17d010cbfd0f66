package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
)

func TestListAllCachesSnapshot(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients)
	ctx := context.Background()

	require.NoError(t, store.Patients.Create(ctx, &model.Patient{Name: "Ana"}))

	first, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses invalidation is not visible until the TTL expires.
	require.NoError(t, store.Patients.Create(ctx, &model.Patient{Name: "Bruno"}))
	cached, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.Invalidate()
	fresh, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestListByStatusUsesSeparateBuckets(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients)
	ctx := context.Background()

	require.NoError(t, store.Patients.Create(ctx, &model.Patient{Name: "Ana"}))
	require.NoError(t, store.Patients.Create(ctx, &model.Patient{
		Name:   "Bruno",
		Status: model.PatientStatusCompleted,
	}))

	waiting, err := svc.ListByStatus(ctx, model.PatientStatusWaiting)
	require.NoError(t, err)
	assert.Len(t, waiting, 1)

	completed, err := svc.ListByStatus(ctx, model.PatientStatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Equal(t, "Bruno", completed[0].Name)
}
