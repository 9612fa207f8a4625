package model

import "time"

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentUsable           EquipmentStatus = "usable"
	EquipmentUnderMaintenance EquipmentStatus = "under_maintenance"
	EquipmentDisabled         EquipmentStatus = "disabled"
)

// Valid reports whether s is one of the known statuses.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentUsable, EquipmentUnderMaintenance, EquipmentDisabled:
		return true
	}
	return false
}

// Equipment represents a machine or tool owned by the gym. Status transitions
// are free-form; recording maintenance always resets the status to usable and
// refreshes the maintenance date.
type Equipment struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"size:255;not null"`
	Status          EquipmentStatus `json:"status" gorm:"size:32;not null;default:'usable'"`
	LastMaintenance *time.Time      `json:"last_maintenance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
