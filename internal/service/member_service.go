package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gymgate/internal/barcode"
	apperrors "gymgate/internal/errors"
	"gymgate/internal/membership"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// maxBarcodeInsertAttempts bounds how often member creation regenerates a
// barcode after losing the benign generate-then-check race to a concurrent
// insert. The unique index is the authority; this is just the retry cap.
const maxBarcodeInsertAttempts = 3

// MemberView is a member annotated with the derived subscription state.
type MemberView struct {
	model.Member
	Status        membership.Status `json:"status"`
	RemainingDays int               `json:"remaining_days"`
}

// MemberService handles the member lifecycle: creation with barcode
// assignment, profile updates, renewal, and annotated reads.
type MemberService interface {
	Add(ctx context.Context, name, planName string, start time.Time, phone, email string) (*model.Member, error)
	Update(ctx context.Context, id uint, name, planName, phone, email string) error
	Delete(ctx context.Context, id uint) error
	Renew(ctx context.Context, id uint, planName string, start time.Time) error
	Get(ctx context.Context, id uint) (*MemberView, error)
	List(ctx context.Context) ([]MemberView, error)
}

type memberService struct {
	store    *storage.Store
	members  *repository.MemberRepository
	plans    *repository.PlanRepository
	barcodes *barcode.Generator
	now      func() time.Time
}

// NewMemberService creates a new member service.
func NewMemberService(store *storage.Store, members *repository.MemberRepository, plans *repository.PlanRepository) MemberService {
	return &memberService{
		store:    store,
		members:  members,
		plans:    plans,
		barcodes: barcode.New(),
		now:      time.Now,
	}
}

// Add creates a member on the given plan: the end date is the start date plus
// the plan duration, and a fresh unique barcode is assigned.
func (s *memberService) Add(ctx context.Context, name, planName string, start time.Time, phone, email string) (*model.Member, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: member name is required", apperrors.ErrValidation)
	}

	plan, err := s.resolvePlan(ctx, planName)
	if err != nil {
		return nil, err
	}
	end := membership.ComputeEndDate(start, plan.DurationDays)

	for attempt := 0; attempt < maxBarcodeInsertAttempts; attempt++ {
		code, err := s.barcodes.Generate(ctx, s.barcodeExists)
		if err != nil {
			return nil, err
		}

		member := &model.Member{
			Name:      name,
			Barcode:   code,
			Plan:      plan.Name,
			StartDate: &start,
			EndDate:   &end,
			Phone:     phone,
			Email:     email,
		}
		err = s.store.Execute(ctx, func(tx *gorm.DB) error {
			return s.members.Create(ctx, tx, member)
		})
		if err == nil {
			return member, nil
		}
		if storage.IsDuplicateBarcode(err) {
			// Lost the race to a concurrent insert; generate again.
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: could not assign a unique barcode", apperrors.ErrConstraintViolation)
}

// Update rewrites a member's profile fields. The end date is untouched; use
// Renew to change the subscription window.
func (s *memberService) Update(ctx context.Context, id uint, name, planName, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: member name is required", apperrors.ErrValidation)
	}
	plan, err := s.resolvePlan(ctx, planName)
	if err != nil {
		return err
	}

	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.members.UpdateProfile(ctx, tx, id, name, plan.Name, phone, email)
	})
	return s.mapNotFound(err)
}

// Delete hard-deletes a member and, through the cascade, its visit history.
func (s *memberService) Delete(ctx context.Context, id uint) error {
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.members.Delete(ctx, tx, id)
	})
	return s.mapNotFound(err)
}

// Renew moves a member onto the given plan starting at start, recomputing the
// end date from the plan duration. Concurrent renewals of the same member are
// last-write-wins.
func (s *memberService) Renew(ctx context.Context, id uint, planName string, start time.Time) error {
	plan, err := s.resolvePlan(ctx, planName)
	if err != nil {
		return err
	}
	end := membership.ComputeEndDate(start, plan.DurationDays)

	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.members.Renew(ctx, tx, id, plan.Name, start, end)
	})
	return s.mapNotFound(err)
}

// Get returns one member annotated with status and remaining days.
func (s *memberService) Get(ctx context.Context, id uint) (*MemberView, error) {
	var member *model.Member
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		member, err = s.members.FindByID(ctx, db, id)
		return err
	})
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	view := annotateMember(*member, s.now())
	return &view, nil
}

// List returns all members, each annotated with status and remaining days.
func (s *memberService) List(ctx context.Context) ([]MemberView, error) {
	var members []model.Member
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		members, err = s.members.List(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}

	today := s.now()
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, annotateMember(m, today))
	}
	return views, nil
}

func (s *memberService) resolvePlan(ctx context.Context, name string) (*model.Plan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: plan name is required", apperrors.ErrValidation)
	}
	var plan *model.Plan
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		plan, err = s.plans.FindByName(ctx, db, name)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan %q", apperrors.ErrEntityNotFound, name)
		}
		return nil, err
	}
	return plan, nil
}

func (s *memberService) barcodeExists(ctx context.Context, code string) (bool, error) {
	var taken bool
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		taken, err = s.members.BarcodeExists(ctx, db, code)
		return err
	})
	return taken, err
}

func (s *memberService) mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrMemberNotFound
	}
	return err
}

func annotateMember(m model.Member, today time.Time) MemberView {
	return MemberView{
		Member:        m,
		Status:        membership.StatusOf(m.EndDate, today),
		RemainingDays: membership.RemainingDays(m.EndDate, today),
	}
}
