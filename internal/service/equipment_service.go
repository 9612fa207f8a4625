package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// EquipmentService handles equipment CRUD and maintenance recording.
type EquipmentService interface {
	Add(ctx context.Context, name string, status model.EquipmentStatus) (*model.Equipment, error)
	Update(ctx context.Context, id uint, name string, status model.EquipmentStatus) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Equipment, error)
	List(ctx context.Context) ([]model.Equipment, error)
	RecordMaintenance(ctx context.Context, id uint) error
}

type equipmentService struct {
	store     *storage.Store
	equipment *repository.EquipmentRepository
	now       func() time.Time
}

// NewEquipmentService creates a new equipment service.
func NewEquipmentService(store *storage.Store, equipment *repository.EquipmentRepository) EquipmentService {
	return &equipmentService{store: store, equipment: equipment, now: time.Now}
}

func validateEquipment(name string, status model.EquipmentStatus) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: equipment name is required", apperrors.ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown equipment status %q", apperrors.ErrValidation, status)
	}
	return nil
}

// Add registers a new piece of equipment, stamping the maintenance date with
// the registration time.
func (s *equipmentService) Add(ctx context.Context, name string, status model.EquipmentStatus) (*model.Equipment, error) {
	if status == "" {
		status = model.EquipmentUsable
	}
	if err := validateEquipment(name, status); err != nil {
		return nil, err
	}
	at := s.now()
	eq := &model.Equipment{Name: name, Status: status, LastMaintenance: &at}
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.equipment.Create(ctx, tx, eq)
	})
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// Update rewrites name and status. Status transitions are free-form.
func (s *equipmentService) Update(ctx context.Context, id uint, name string, status model.EquipmentStatus) error {
	if err := validateEquipment(name, status); err != nil {
		return err
	}
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.equipment.Update(ctx, tx, id, name, status)
	})
	return mapEntityNotFound(err)
}

// Delete hard-deletes a piece of equipment.
func (s *equipmentService) Delete(ctx context.Context, id uint) error {
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.equipment.Delete(ctx, tx, id)
	})
	return mapEntityNotFound(err)
}

// Get returns one piece of equipment by id.
func (s *equipmentService) Get(ctx context.Context, id uint) (*model.Equipment, error) {
	var eq *model.Equipment
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		eq, err = s.equipment.FindByID(ctx, db, id)
		return err
	})
	if err != nil {
		return nil, mapEntityNotFound(err)
	}
	return eq, nil
}

// List returns all equipment.
func (s *equipmentService) List(ctx context.Context) ([]model.Equipment, error) {
	var items []model.Equipment
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		items, err = s.equipment.List(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RecordMaintenance marks the equipment usable and refreshes the maintenance
// date, whatever the previous status was.
func (s *equipmentService) RecordMaintenance(ctx context.Context, id uint) error {
	err := s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.equipment.RecordMaintenance(ctx, tx, id, s.now())
	})
	return mapEntityNotFound(err)
}
