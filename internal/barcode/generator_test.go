package barcode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := New()

	t.Run("returns a valid free code", func(t *testing.T) {
		code, err := g.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.True(t, Valid(code))
	})

	t.Run("skips taken codes", func(t *testing.T) {
		calls := 0
		code, err := g.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
			calls++
			return calls <= 3, nil
		})
		require.NoError(t, err)
		assert.True(t, Valid(code))
		assert.Equal(t, 4, calls)
	})

	t.Run("gives up when every candidate is taken", func(t *testing.T) {
		calls := 0
		_, err := g.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, defaultMaxAttempts, calls)
	})

	t.Run("propagates existence-check errors", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := g.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("successive codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := g.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
				return false, nil
			})
			require.NoError(t, err)
			seen[code] = true
		}
		// 50 draws from 10^12 candidates colliding would point at a broken RNG.
		assert.Len(t, seen, 50)
	})
}

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"twelve digits", "123456789012", true},
		{"leading zeros", "000000000000", true},
		{"too short", "12345678901", false},
		{"too long", "1234567890123", false},
		{"empty", "", false},
		{"letters", "12345678901a", false},
		{"non-ascii digit", "12345678901٠", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Valid(tt.code))
		})
	}
}
