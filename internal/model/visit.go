package model

import "time"

// Visit is an immutable check-in event. Rows are only ever appended; deleting
// a member cascades to its visit history.
type Visit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MemberID  uint      `json:"member_id" gorm:"not null;index"`
	VisitedAt time.Time `json:"visited_at" gorm:"not null;index"`

	Member *Member `json:"-" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}
