package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymgate/internal/membership"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

func newReportService(store *storage.Store, now func() time.Time) *reportService {
	return &reportService{
		store:   store,
		reports: repository.NewReportRepository(),
		now:     now,
	}
}

func TestReportSummaryAndExpired(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	members := newMemberService(store, fixedTime(2024, time.January, 1))
	ctx := context.Background()

	// One membership running through January, one through February.
	_, err := members.Add(ctx, "Alice", "Monthly", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)
	_, err = members.Add(ctx, "Bob", "Monthly", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)

	// On Feb 10 Alice has lapsed and Bob is still active.
	reports := newReportService(store, fixedTime(2024, time.February, 10))

	summary, err := reports.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalMembers)
	assert.Equal(t, int64(1), summary.ActiveMembers)
	assert.Equal(t, int64(1), summary.ExpiredMembers)

	expired, err := reports.ExpiredMembers(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Alice", expired[0].Name)
	assert.Equal(t, membership.StatusExpired, expired[0].Status)
}

func TestReportRevenueByPlan(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	seedPlan(t, store, "Yearly", 365)
	members := newMemberService(store, fixedTime(2024, time.January, 1))
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"Alice", "Bob"} {
		_, err := members.Add(ctx, name, "Monthly", start, "", "")
		require.NoError(t, err)
	}
	_, err := members.Add(ctx, "Carol", "Yearly", start, "", "")
	require.NoError(t, err)

	reports := newReportService(store, fixedTime(2024, time.January, 15))
	rows, err := reports.RevenueByPlan(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Monthly", rows[0].Plan)
	assert.Equal(t, int64(2), rows[0].Members)
	assert.Equal(t, "Yearly", rows[1].Plan)
	assert.Equal(t, int64(1), rows[1].Members)
}

func TestReportVisitsLast30Days(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	members := newMemberService(store, fixedTime(2024, time.January, 1))
	ctx := context.Background()

	member, err := members.Add(ctx, "Alice", "Monthly",
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)

	// Two visits on one day, one on another, one too old to count.
	for _, day := range []int{10, 10, 12} {
		visits := newVisitService(store, fixedTime(2024, time.January, day))
		_, err := visits.CheckIn(ctx, member.Barcode)
		require.NoError(t, err)
	}
	old := newVisitService(store, fixedTime(2023, time.November, 1))
	_, err = old.CheckIn(ctx, member.Barcode)
	require.NoError(t, err)

	reports := newReportService(store, fixedTime(2024, time.January, 15))
	rows, err := reports.VisitsLast30Days(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-10", rows[0].Day)
	assert.Equal(t, int64(2), rows[0].Visits)
	assert.Equal(t, "2024-01-12", rows[1].Day)
	assert.Equal(t, int64(1), rows[1].Visits)
}

func TestReportEquipmentByStatus(t *testing.T) {
	store := newTestStore(t)
	equipment := newEquipmentService(store, fixedTime(2024, time.March, 1))
	ctx := context.Background()

	for _, item := range []struct {
		name   string
		status model.EquipmentStatus
	}{
		{"Treadmill A", model.EquipmentUsable},
		{"Treadmill B", model.EquipmentUsable},
		{"Rowing machine", model.EquipmentUnderMaintenance},
	} {
		_, err := equipment.Add(ctx, item.name, item.status)
		require.NoError(t, err)
	}

	reports := newReportService(store, fixedTime(2024, time.March, 2))
	rows, err := reports.EquipmentByStatus(ctx)
	require.NoError(t, err)

	counts := make(map[model.EquipmentStatus]int64)
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	assert.Equal(t, int64(2), counts[model.EquipmentUsable])
	assert.Equal(t, int64(1), counts[model.EquipmentUnderMaintenance])
}
