package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

func newPlanService(store *storage.Store) PlanService {
	return NewPlanService(store, repository.NewPlanRepository())
}

func TestPlanAdd(t *testing.T) {
	store := newTestStore(t)
	svc := newPlanService(store)
	ctx := context.Background()

	plan, err := svc.Add(ctx, "Monthly", 30, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.NotZero(t, plan.ID)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Add(ctx, "Monthly", 60, decimal.NewFromInt(90))
		assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)
	})

	tests := []struct {
		name         string
		planName     string
		durationDays int
		price        decimal.Decimal
	}{
		{"empty name", "", 30, decimal.NewFromInt(50)},
		{"zero duration", "Weekly", 0, decimal.NewFromInt(50)},
		{"negative duration", "Weekly", -7, decimal.NewFromInt(50)},
		{"negative price", "Weekly", 7, decimal.NewFromInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.planName, tt.durationDays, tt.price)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPlanUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	svc := newPlanService(store)
	ctx := context.Background()

	plan, err := svc.Add(ctx, "Monthly", 30, decimal.NewFromInt(50))
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, plan.ID, "Monthly Plus", 31, decimal.NewFromInt(55)))
	got, err := svc.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly Plus", got.Name)
	assert.Equal(t, 31, got.DurationDays)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(55)))

	assert.ErrorIs(t, svc.Update(ctx, 9999, "Ghost", 30, decimal.NewFromInt(1)), apperrors.ErrEntityNotFound)

	require.NoError(t, svc.Delete(ctx, plan.ID))
	_, err = svc.Get(ctx, plan.ID)
	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, plan.ID), apperrors.ErrEntityNotFound)
}

func TestPlanList(t *testing.T) {
	store := newTestStore(t)
	svc := newPlanService(store)
	ctx := context.Background()

	for _, name := range []string{"Monthly", "Quarterly", "Yearly"} {
		_, err := svc.Add(ctx, name, 30, decimal.NewFromInt(50))
		require.NoError(t, err)
	}

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 3)
}
