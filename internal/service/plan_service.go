package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// PlanService handles subscription-plan CRUD with write-time validation.
type PlanService interface {
	Add(ctx context.Context, name string, durationDays int, price decimal.Decimal) (*model.Plan, error)
	Update(ctx context.Context, id uint, name string, durationDays int, price decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
}

type planService struct {
	store *storage.Store
	plans *repository.PlanRepository
}

// NewPlanService creates a new plan service.
func NewPlanService(store *storage.Store, plans *repository.PlanRepository) PlanService {
	return &planService{store: store, plans: plans}
}

func validatePlan(name string, durationDays int, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: plan name is required", apperrors.ErrValidation)
	}
	if durationDays <= 0 {
		return fmt.Errorf("%w: plan duration must be positive", apperrors.ErrValidation)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: plan price must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// Add creates a plan. A duplicate name surfaces as a constraint violation.
func (s *planService) Add(ctx context.Context, name string, durationDays int, price decimal.Decimal) (*model.Plan, error) {
	if err := validatePlan(name, durationDays, price); err != nil {
		return nil, err
	}
	plan := &model.Plan{Name: name, DurationDays: durationDays, Price: price}
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.plans.Create(ctx, tx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Update rewrites a plan. Members already on the plan keep their current end
// dates; the new duration only applies to future renewals.
func (s *planService) Update(ctx context.Context, id uint, name string, durationDays int, price decimal.Decimal) error {
	if err := validatePlan(name, durationDays, price); err != nil {
		return err
	}
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.plans.Update(ctx, tx, &model.Plan{ID: id, Name: name, DurationDays: durationDays, Price: price})
	})
	return mapEntityNotFound(err)
}

// Delete hard-deletes a plan.
func (s *planService) Delete(ctx context.Context, id uint) error {
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.plans.Delete(ctx, tx, id)
	})
	return mapEntityNotFound(err)
}

// Get returns one plan by id.
func (s *planService) Get(ctx context.Context, id uint) (*model.Plan, error) {
	var plan *model.Plan
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		plan, err = s.plans.FindByID(ctx, db, id)
		return err
	})
	if err != nil {
		return nil, mapEntityNotFound(err)
	}
	return plan, nil
}

// List returns all plans.
func (s *planService) List(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		plans, err = s.plans.List(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func mapEntityNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrEntityNotFound
	}
	return err
}
