// Package membership holds the pure subscription-lifecycle computations.
// Every function takes an explicit "today" so callers stay deterministic and
// testable without wall-clock dependence.
package membership

import "time"

// Status is the derived classification of a member's subscription. It is
// recomputed on every read and never stored.
type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
	StatusUnspecified  Status = "unspecified"
)

// ExpiryWarningDays is the window, in days, during which a subscription is
// reported as expiring soon.
const ExpiryWarningDays = 7

// DaysUnspecified is the sentinel returned by RemainingDays when the member
// has no end date.
const DaysUnspecified = -1

// ComputeEndDate returns start plus the plan duration in calendar days, with
// no timezone adjustment.
func ComputeEndDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// RemainingDays returns the whole days left until end, never negative.
// A nil end date yields DaysUnspecified.
func RemainingDays(end *time.Time, today time.Time) int {
	if end == nil {
		return DaysUnspecified
	}
	days := daysBetween(today, *end)
	if days < 0 {
		return 0
	}
	return days
}

// StatusOf classifies a subscription relative to today: expired when the end
// date has passed, expiring soon within ExpiryWarningDays, active otherwise.
func StatusOf(end *time.Time, today time.Time) Status {
	if end == nil {
		return StatusUnspecified
	}
	days := daysBetween(today, *end)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiryWarningDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// daysBetween counts calendar days from a to b, ignoring the time of day.
func daysBetween(a, b time.Time) int {
	return int(atMidnight(b).Sub(atMidnight(a)) / (24 * time.Hour))
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
