package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gymgate/internal/model"
)

// EquipmentRepository persists gym equipment.
type EquipmentRepository struct{}

// NewEquipmentRepository creates an equipment repository.
func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{}
}

// Create inserts a new piece of equipment.
func (r *EquipmentRepository) Create(ctx context.Context, db *gorm.DB, eq *model.Equipment) error {
	return db.WithContext(ctx).Create(eq).Error
}

// Update rewrites name and status of a piece of equipment.
func (r *EquipmentRepository) Update(ctx context.Context, db *gorm.DB, id uint, name string, status model.EquipmentStatus) error {
	result := db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":   name,
		"status": status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a piece of equipment.
func (r *EquipmentRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	result := db.WithContext(ctx).Delete(&model.Equipment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns the piece of equipment with the given id.
func (r *EquipmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Equipment, error) {
	var eq model.Equipment
	if err := db.WithContext(ctx).First(&eq, id).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

// List returns all equipment ordered by id.
func (r *EquipmentRepository) List(ctx context.Context, db *gorm.DB) ([]model.Equipment, error) {
	var items []model.Equipment
	if err := db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RecordMaintenance marks the equipment usable and refreshes its maintenance
// date.
func (r *EquipmentRepository) RecordMaintenance(ctx context.Context, db *gorm.DB, id uint, at time.Time) error {
	result := db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           model.EquipmentUsable,
		"last_maintenance": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
