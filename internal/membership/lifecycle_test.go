package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestComputeEndDate(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		durationDays int
		expected     time.Time
	}{
		{
			name:         "30 day plan",
			start:        date(2024, time.January, 1),
			durationDays: 30,
			expected:     date(2024, time.January, 31),
		},
		{
			name:         "30 day plan crossing a month boundary",
			start:        date(2024, time.February, 1),
			durationDays: 30,
			expected:     date(2024, time.March, 2),
		},
		{
			name:         "365 day plan over a leap year",
			start:        date(2024, time.January, 1),
			durationDays: 365,
			expected:     date(2024, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeEndDate(tt.start, tt.durationDays))
		})
	}
}

func TestRemainingDays(t *testing.T) {
	tests := []struct {
		name     string
		end      *time.Time
		today    time.Time
		expected int
	}{
		{
			name:     "six days left",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 25),
			expected: 6,
		},
		{
			name:     "ends today",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 31),
			expected: 0,
		},
		{
			name:     "already ended clamps to zero",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.February, 1),
			expected: 0,
		},
		{
			name:     "no end date",
			end:      nil,
			today:    date(2024, time.January, 25),
			expected: DaysUnspecified,
		},
		{
			name:     "time of day is ignored",
			end:      datePtr(2024, time.January, 31),
			today:    time.Date(2024, time.January, 25, 23, 59, 0, 0, time.UTC),
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemainingDays(tt.end, tt.today))
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		end      *time.Time
		today    time.Time
		expected Status
	}{
		{
			name:     "well before the warning window",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 1),
			expected: StatusActive,
		},
		{
			name:     "exactly one day outside the window",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 23),
			expected: StatusActive,
		},
		{
			name:     "inside the warning window",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 25),
			expected: StatusExpiringSoon,
		},
		{
			name:     "window starts seven days out",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 24),
			expected: StatusExpiringSoon,
		},
		{
			name:     "ends today is still expiring soon",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.January, 31),
			expected: StatusExpiringSoon,
		},
		{
			name:     "day after the end date",
			end:      datePtr(2024, time.January, 31),
			today:    date(2024, time.February, 1),
			expected: StatusExpired,
		},
		{
			name:     "no end date",
			end:      nil,
			today:    date(2024, time.February, 1),
			expected: StatusUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.end, tt.today))
		})
	}
}
