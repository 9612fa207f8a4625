package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymgate/internal/barcode"
	apperrors "gymgate/internal/errors"
	"gymgate/internal/membership"
)

func TestMemberAdd(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	svc := newMemberService(store, fixedTime(2024, time.January, 1))
	ctx := context.Background()

	t.Run("computes end date and assigns a barcode", func(t *testing.T) {
		start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		member, err := svc.Add(ctx, "Alice Hart", "Monthly", start, "555-0101", "alice@example.com")
		require.NoError(t, err)

		assert.NotZero(t, member.ID)
		assert.True(t, barcode.Valid(member.Barcode))
		require.NotNil(t, member.EndDate)
		assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), *member.EndDate)
		assert.Zero(t, member.Visits)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Add(ctx, "  ", "Monthly", time.Now(), "", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		_, err := svc.Add(ctx, "Bob", "Platinum", time.Now(), "", "")
		assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
	})
}

func TestMemberStatusAnnotation(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	created, err := newMemberService(store, fixedTime(2024, time.January, 1)).
		Add(ctx, "Alice Hart", "Monthly", start, "", "")
	require.NoError(t, err)

	tests := []struct {
		name          string
		today         func() time.Time
		status        membership.Status
		remainingDays int
	}{
		{"mid-term", fixedTime(2024, time.January, 10), membership.StatusActive, 21},
		{"six days before the end", fixedTime(2024, time.January, 25), membership.StatusExpiringSoon, 6},
		{"day after the end", fixedTime(2024, time.February, 1), membership.StatusExpired, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := newMemberService(store, tt.today).Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, view.Status)
			assert.Equal(t, tt.remainingDays, view.RemainingDays)
		})
	}
}

func TestMemberRenew(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	svc := newMemberService(store, fixedTime(2024, time.February, 1))
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	member, err := svc.Add(ctx, "Alice Hart", "Monthly", start, "", "")
	require.NoError(t, err)

	renewStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Renew(ctx, member.ID, "Monthly", renewStart))

	view, err := svc.Get(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, view.EndDate)
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), *view.EndDate)
	assert.Equal(t, membership.StatusActive, view.Status)

	t.Run("unknown member", func(t *testing.T) {
		err := svc.Renew(ctx, 9999, "Monthly", renewStart)
		assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
	})
}

func TestMemberUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	seedPlan(t, store, "Yearly", 365)
	svc := newMemberService(store, fixedTime(2024, time.January, 1))
	visits := newVisitService(store, fixedTime(2024, time.January, 2))
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	member, err := svc.Add(ctx, "Alice Hart", "Monthly", start, "555-0101", "")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, member.ID, "Alice H. Hart", "Yearly", "555-0199", "alice@example.com"))
	view, err := svc.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice H. Hart", view.Name)
	assert.Equal(t, "Yearly", view.Plan)
	assert.Equal(t, "555-0199", view.Phone)
	// Update never touches the subscription window.
	require.NotNil(t, view.EndDate)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), *view.EndDate)

	// Delete removes the member and, via the cascade, their visit log.
	_, err = visits.CheckIn(ctx, member.Barcode)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, member.ID))

	_, err = svc.Get(ctx, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
	_, err = visits.History(ctx, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, member.ID), apperrors.ErrMemberNotFound)
}

func TestConcurrentAddsGetDistinctBarcodes(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	svc := newMemberService(store, fixedTime(2024, time.January, 1))

	const n = 10
	codes := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			member, err := svc.Add(context.Background(), "Member", "Monthly",
				time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "", "")
			if err != nil {
				errs[i] = err
				return
			}
			codes[i] = member.Barcode
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, barcode.Valid(codes[i]))
		assert.False(t, seen[codes[i]], "barcode %s assigned twice", codes[i])
		seen[codes[i]] = true
	}
}

func TestMemberList(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	svc := newMemberService(store, fixedTime(2024, time.January, 25))
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"Alice", "Bob"} {
		_, err := svc.Add(ctx, name, "Monthly", start, "", "")
		require.NoError(t, err)
	}

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, membership.StatusExpiringSoon, v.Status)
		assert.Equal(t, 6, v.RemainingDays)
	}
}
