package model

import "time"

// BarcodeLength is the exact number of digits in a member barcode.
const BarcodeLength = 12

// Member represents a gym member. Subscription status and remaining days are
// derived from EndDate at read time and never stored.
type Member struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:255;not null"`
	Barcode   string     `json:"barcode" gorm:"uniqueIndex;size:12;not null"`
	Plan      string     `json:"plan" gorm:"size:255;not null;index"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date" gorm:"index"`
	LastVisit *time.Time `json:"last_visit"`
	Visits    int        `json:"visits" gorm:"not null;default:0"`
	Phone     string     `json:"phone" gorm:"size:32"`
	Email     string     `json:"email" gorm:"size:255"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
