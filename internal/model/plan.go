package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a named subscription template: a duration in calendar days and a
// price. Members reference plans by name.
type Plan struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"uniqueIndex;size:255;not null"`
	DurationDays int             `json:"duration_days" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
