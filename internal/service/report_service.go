package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// Summary is the headline numbers shown on the dashboard.
type Summary struct {
	TotalMembers   int64 `json:"total_members"`
	ActiveMembers  int64 `json:"active_members"`
	ExpiredMembers int64 `json:"expired_members"`
}

// ReportService produces the aggregate views over members, visits and
// equipment.
type ReportService interface {
	Summary(ctx context.Context) (*Summary, error)
	RevenueByPlan(ctx context.Context) ([]repository.PlanRevenue, error)
	VisitsLast30Days(ctx context.Context) ([]repository.DayVisits, error)
	EquipmentByStatus(ctx context.Context) ([]repository.StatusCount, error)
	ExpiredMembers(ctx context.Context) ([]MemberView, error)
}

type reportService struct {
	store   *storage.Store
	reports *repository.ReportRepository
	now     func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(store *storage.Store, reports *repository.ReportRepository) ReportService {
	return &reportService{store: store, reports: reports, now: time.Now}
}

// Summary returns total, active and expired member counts.
func (s *reportService) Summary(ctx context.Context) (*Summary, error) {
	today := s.now()
	var summary Summary
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		if summary.TotalMembers, err = s.reports.TotalMembers(ctx, db); err != nil {
			return err
		}
		if summary.ActiveMembers, err = s.reports.ActiveMembers(ctx, db, today); err != nil {
			return err
		}
		summary.ExpiredMembers = summary.TotalMembers - summary.ActiveMembers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// RevenueByPlan returns member counts and summed plan prices per plan.
func (s *reportService) RevenueByPlan(ctx context.Context) ([]repository.PlanRevenue, error) {
	var rows []repository.PlanRevenue
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		rows, err = s.reports.RevenueByPlan(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// VisitsLast30Days returns daily check-in counts for the last 30 days.
func (s *reportService) VisitsLast30Days(ctx context.Context) ([]repository.DayVisits, error) {
	since := s.now().AddDate(0, 0, -30)
	var rows []repository.DayVisits
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		rows, err = s.reports.VisitsPerDay(ctx, db, since)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// EquipmentByStatus returns equipment counts grouped by status.
func (s *reportService) EquipmentByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	var rows []repository.StatusCount
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		rows, err = s.reports.EquipmentByStatus(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExpiredMembers returns members whose membership has lapsed, annotated with
// status and remaining days.
func (s *reportService) ExpiredMembers(ctx context.Context) ([]MemberView, error) {
	today := s.now()
	var members []MemberView
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		rows, err := s.reports.ExpiredMembers(ctx, db, today)
		if err != nil {
			return err
		}
		members = make([]MemberView, 0, len(rows))
		for _, m := range rows {
			members = append(members, annotateMember(m, today))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
