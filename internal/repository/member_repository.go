package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gymgate/internal/model"
)

// MemberRepository persists members. Methods take the *gorm.DB handle owned
// by the caller so the same repository works inside and outside a
// transaction.
type MemberRepository struct{}

// NewMemberRepository creates a member repository.
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// Create inserts a new member. The store assigns the surrogate id.
func (r *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

// UpdateProfile rewrites the mutable profile fields of a member. The end date
// is deliberately untouched; only renewal recomputes it.
func (r *MemberRepository) UpdateProfile(ctx context.Context, db *gorm.DB, id uint, name, plan, phone, email string) error {
	result := db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  name,
		"plan":  plan,
		"phone": phone,
		"email": email,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Renew rewrites the subscription fields of a member.
func (r *MemberRepository) Renew(ctx context.Context, db *gorm.DB, id uint, plan string, start, end time.Time) error {
	result := db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(map[string]interface{}{
		"plan":       plan,
		"start_date": start,
		"end_date":   end,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a member. Visit rows cascade at the store level.
func (r *MemberRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	result := db.WithContext(ctx).Delete(&model.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns the member with the given id.
func (r *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Member, error) {
	var member model.Member
	if err := db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByBarcode returns the member carrying the given barcode.
func (r *MemberRepository) FindByBarcode(ctx context.Context, db *gorm.DB, code string) (*model.Member, error) {
	var member model.Member
	if err := db.WithContext(ctx).Where("barcode = ?", code).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// BarcodeExists reports whether any member already carries the given barcode.
func (r *MemberRepository) BarcodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).Where("barcode = ?", code).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all members ordered by id.
func (r *MemberRepository) List(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	var members []model.Member
	if err := db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// RecordVisit stamps the last visit and increments the running visit counter
// in a single statement, so the counter moves monotonically even under
// concurrent check-ins.
func (r *MemberRepository) RecordVisit(ctx context.Context, db *gorm.DB, id uint, at time.Time) error {
	result := db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_visit": at,
		"visits":     gorm.Expr("visits + 1"),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
