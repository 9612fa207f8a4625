package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "gymgate/internal/errors"
)

// Classify translates driver-level failures into the shared error taxonomy.
// Errors that already carry a domain meaning pass through untouched so
// services can keep distinguishing "not found" from real storage failures.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		apperrors.ErrValidation,
		apperrors.ErrMemberNotFound,
		apperrors.ErrEntityNotFound,
		apperrors.ErrConstraintViolation,
		apperrors.ErrPoolUnavailable,
		apperrors.ErrConnection,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %w", apperrors.ErrConstraintViolation, err)
	}
	var qerr *apperrors.QueryError
	if errors.As(err, &qerr) {
		return err
	}
	return &apperrors.QueryError{Cause: err}
}

// IsDuplicateBarcode reports whether err is the unique-constraint failure on
// the members barcode column specifically. Member creation retries barcode
// generation on exactly this condition and nothing else.
func IsDuplicateBarcode(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) || serr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return false
	}
	return strings.Contains(serr.Error(), "members.barcode")
}
