package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

func newEquipmentService(store *storage.Store, now func() time.Time) *equipmentService {
	return &equipmentService{
		store:     store,
		equipment: repository.NewEquipmentRepository(),
		now:       now,
	}
}

func TestEquipmentAdd(t *testing.T) {
	store := newTestStore(t)
	svc := newEquipmentService(store, fixedTime(2024, time.March, 1))
	ctx := context.Background()

	t.Run("defaults to usable and stamps the maintenance date", func(t *testing.T) {
		eq, err := svc.Add(ctx, "Treadmill A", "")
		require.NoError(t, err)
		assert.Equal(t, model.EquipmentUsable, eq.Status)
		require.NotNil(t, eq.LastMaintenance)
		assert.Equal(t, svc.now(), *eq.LastMaintenance)
	})

	t.Run("explicit status is kept", func(t *testing.T) {
		eq, err := svc.Add(ctx, "Rowing machine", model.EquipmentUnderMaintenance)
		require.NoError(t, err)
		assert.Equal(t, model.EquipmentUnderMaintenance, eq.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.Add(ctx, "Squat rack", "broken")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Add(ctx, " ", model.EquipmentUsable)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestEquipmentMaintenance(t *testing.T) {
	store := newTestStore(t)
	svc := newEquipmentService(store, fixedTime(2024, time.March, 1))
	ctx := context.Background()

	eq, err := svc.Add(ctx, "Treadmill A", model.EquipmentDisabled)
	require.NoError(t, err)

	later := newEquipmentService(store, fixedTime(2024, time.April, 15))
	require.NoError(t, later.RecordMaintenance(ctx, eq.ID))

	got, err := svc.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentUsable, got.Status)
	require.NotNil(t, got.LastMaintenance)
	assert.True(t, got.LastMaintenance.Equal(later.now()))

	assert.ErrorIs(t, later.RecordMaintenance(ctx, 9999), apperrors.ErrEntityNotFound)
}

func TestEquipmentUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	svc := newEquipmentService(store, fixedTime(2024, time.March, 1))
	ctx := context.Background()

	eq, err := svc.Add(ctx, "Treadmill A", model.EquipmentUsable)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, eq.ID, "Treadmill A1", model.EquipmentDisabled))
	got, err := svc.Get(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, "Treadmill A1", got.Name)
	assert.Equal(t, model.EquipmentDisabled, got.Status)

	require.NoError(t, svc.Delete(ctx, eq.ID))
	_, err = svc.Get(ctx, eq.ID)
	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
