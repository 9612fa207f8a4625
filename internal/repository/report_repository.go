package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymgate/internal/model"
)

// PlanRevenue is one row of the revenue-by-plan report.
type PlanRevenue struct {
	Plan    string          `json:"plan"`
	Members int64           `json:"members"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DayVisits is one row of the visits-per-day report.
type DayVisits struct {
	Day    string `json:"day"`
	Visits int64  `json:"visits"`
}

// StatusCount is one row of the equipment-by-status report.
type StatusCount struct {
	Status model.EquipmentStatus `json:"status"`
	Count  int64                 `json:"count"`
}

// ReportRepository runs the aggregate read-only queries behind the report
// endpoints.
type ReportRepository struct{}

// NewReportRepository creates a report repository.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

// TotalMembers returns the member headcount.
func (r *ReportRepository) TotalMembers(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveMembers returns how many members have an end date on or after today.
func (r *ReportRepository) ActiveMembers(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).Where("end_date >= ?", today).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RevenueByPlan groups members by plan and sums the plan price per member.
func (r *ReportRepository) RevenueByPlan(ctx context.Context, db *gorm.DB) ([]PlanRevenue, error) {
	var rows []PlanRevenue
	err := db.WithContext(ctx).Raw(`
		SELECT p.name AS plan, COUNT(m.id) AS members, SUM(p.price) AS revenue
		FROM members m
		JOIN plans p ON m.plan = p.name
		GROUP BY p.name
		ORDER BY p.name`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// VisitsPerDay returns daily check-in counts since the given time.
func (r *ReportRepository) VisitsPerDay(ctx context.Context, db *gorm.DB, since time.Time) ([]DayVisits, error) {
	var rows []DayVisits
	err := db.WithContext(ctx).Raw(`
		SELECT strftime('%Y-%m-%d', visited_at) AS day, COUNT(*) AS visits
		FROM visits
		WHERE visited_at >= ?
		GROUP BY day
		ORDER BY day`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// EquipmentByStatus returns equipment counts grouped by status.
func (r *ReportRepository) EquipmentByStatus(ctx context.Context, db *gorm.DB) ([]StatusCount, error) {
	var rows []StatusCount
	err := db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM equipment
		GROUP BY status
		ORDER BY status`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExpiredMembers returns members whose end date is strictly before today.
func (r *ReportRepository) ExpiredMembers(ctx context.Context, db *gorm.DB, today time.Time) ([]model.Member, error) {
	var members []model.Member
	err := db.WithContext(ctx).Where("end_date < ?", today).Order("end_date").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
