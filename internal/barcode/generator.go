// Package barcode issues the 12-digit numeric identifiers that members are
// looked up by at check-in.
package barcode

import (
	"context"
	"errors"
	"math/rand"
	"strings"
)

// Length is the exact number of digits in a barcode.
const Length = 12

// defaultMaxAttempts bounds the generate-then-check loop so generation
// provably terminates. With 10^12 candidates the bound is never hit in
// practice.
const defaultMaxAttempts = 32

// ErrExhausted is returned when no free candidate was found within the
// attempt bound.
var ErrExhausted = errors.New("barcode generation exhausted attempts")

// ExistsFunc reports whether a candidate barcode is already assigned.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator produces barcodes not currently assigned to any member. The
// existence check is best effort; the store's unique index on the barcode
// column remains the authoritative guard, so callers must still retry
// generation when an insert fails with a duplicate-barcode constraint.
type Generator struct {
	maxAttempts int
}

// New creates a generator with the default attempt bound.
func New() *Generator {
	return &Generator{maxAttempts: defaultMaxAttempts}
}

// Generate returns a random Length-digit code for which exists reported
// false. Errors from exists abort generation immediately.
func (g *Generator) Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := randomCode()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// Valid reports whether code is exactly Length decimal digits.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func randomCode() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte('0' + byte(rand.Intn(10)))
	}
	return b.String()
}
