package repository

import (
	"context"

	"gorm.io/gorm"

	"gymgate/internal/model"
)

// VisitRepository appends to the visit log. Visits are never updated or
// deleted individually.
type VisitRepository struct{}

// NewVisitRepository creates a visit repository.
func NewVisitRepository() *VisitRepository {
	return &VisitRepository{}
}

// Create appends a visit row.
func (r *VisitRepository) Create(ctx context.Context, db *gorm.DB, visit *model.Visit) error {
	return db.WithContext(ctx).Create(visit).Error
}

// ListByMember returns a member's visits, most recent first.
func (r *VisitRepository) ListByMember(ctx context.Context, db *gorm.DB, memberID uint) ([]model.Visit, error) {
	var visits []model.Visit
	err := db.WithContext(ctx).Where("member_id = ?", memberID).Order("visited_at DESC, id DESC").Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// CountByMember returns how many visits a member has logged.
func (r *VisitRepository) CountByMember(ctx context.Context, db *gorm.DB, memberID uint) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Visit{}).Where("member_id = ?", memberID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
