package repository

import (
	"context"

	"gorm.io/gorm"

	"gymgate/internal/model"
)

// PlanRepository persists subscription plans.
type PlanRepository struct{}

// NewPlanRepository creates a plan repository.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

// Create inserts a new plan.
func (r *PlanRepository) Create(ctx context.Context, db *gorm.DB, plan *model.Plan) error {
	return db.WithContext(ctx).Create(plan).Error
}

// Update rewrites name, duration and price of a plan.
func (r *PlanRepository) Update(ctx context.Context, db *gorm.DB, plan *model.Plan) error {
	result := db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", plan.ID).Updates(map[string]interface{}{
		"name":          plan.Name,
		"duration_days": plan.DurationDays,
		"price":         plan.Price,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a plan.
func (r *PlanRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	result := db.WithContext(ctx).Delete(&model.Plan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns the plan with the given id.
func (r *PlanRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByName returns the plan with the given unique name.
func (r *PlanRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Plan, error) {
	var plan model.Plan
	if err := db.WithContext(ctx).Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns all plans ordered by id.
func (r *PlanRepository) List(ctx context.Context, db *gorm.DB) ([]model.Plan, error) {
	var plans []model.Plan
	if err := db.WithContext(ctx).Order("id").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
