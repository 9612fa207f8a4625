package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// CheckInResult is the outcome of a successful check-in: the member as they
// look after the visit was recorded.
type CheckInResult struct {
	Member    MemberView `json:"member"`
	VisitedAt time.Time  `json:"visited_at"`
}

// VisitService records check-in events against the visit log and the
// member's running counters.
type VisitService interface {
	CheckIn(ctx context.Context, code string) (*CheckInResult, error)
	History(ctx context.Context, memberID uint) ([]model.Visit, error)
}

type visitService struct {
	store   *storage.Store
	members *repository.MemberRepository
	visits  *repository.VisitRepository
	now     func() time.Time
}

// NewVisitService creates a new visit service.
func NewVisitService(store *storage.Store, members *repository.MemberRepository, visits *repository.VisitRepository) VisitService {
	return &visitService{
		store:   store,
		members: members,
		visits:  visits,
		now:     time.Now,
	}
}

// CheckIn resolves the member by barcode, appends a visit row and bumps the
// member's last-visit and visit-count fields. The two writes are independent
// atomic statements sharing one timestamp; a crash between them can leave the
// counter one behind the log, which is accepted. Calling twice records two
// visits: every call is a real check-in event.
func (s *visitService) CheckIn(ctx context.Context, code string) (*CheckInResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: barcode is required", apperrors.ErrValidation)
	}

	var member *model.Member
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		member, err = s.members.FindByBarcode(ctx, db, code)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}

	at := s.now()
	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.visits.Create(ctx, tx, &model.Visit{MemberID: member.ID, VisitedAt: at})
	})
	if err != nil {
		return nil, err
	}
	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.members.RecordVisit(ctx, tx, member.ID, at)
	})
	if err != nil {
		return nil, err
	}

	member.LastVisit = &at
	member.Visits++
	return &CheckInResult{
		Member:    annotateMember(*member, at),
		VisitedAt: at,
	}, nil
}

// History returns a member's visit log, most recent first.
func (s *visitService) History(ctx context.Context, memberID uint) ([]model.Visit, error) {
	// Resolve the member first so an unknown id reads as MemberNotFound, not
	// an empty log.
	var visits []model.Visit
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		if _, err := s.members.FindByID(ctx, db, memberID); err != nil {
			return err
		}
		var err error
		visits, err = s.visits.ListByMember(ctx, db, memberID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}
	return visits, nil
}
