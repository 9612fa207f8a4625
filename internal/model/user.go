package model

import "time"

// User roles. Staff can run the front desk; admins can additionally manage
// users, backups and restores.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff account that can sign in to the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:32;not null;default:'staff'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
