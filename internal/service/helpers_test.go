package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymgate/internal/barcode"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gym.db")
	store, err := storage.Open(context.Background(), path, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func seedPlan(t *testing.T, store *storage.Store, name string, durationDays int) {
	t.Helper()
	err := store.Execute(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&model.Plan{
			Name:         name,
			DurationDays: durationDays,
			Price:        decimal.NewFromInt(50),
		}).Error
	})
	require.NoError(t, err)
}

// newMemberService builds a member service with a controllable clock.
func newMemberService(store *storage.Store, now func() time.Time) *memberService {
	return &memberService{
		store:    store,
		members:  repository.NewMemberRepository(),
		plans:    repository.NewPlanRepository(),
		barcodes: barcode.New(),
		now:      now,
	}
}

func newVisitService(store *storage.Store, now func() time.Time) *visitService {
	return &visitService{
		store:   store,
		members: repository.NewMemberRepository(),
		visits:  repository.NewVisitRepository(),
		now:     now,
	}
}

func fixedTime(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	}
}
