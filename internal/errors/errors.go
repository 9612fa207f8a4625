package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrPoolUnavailable is returned when the connection pool was never
	// initialized or has been closed.
	ErrPoolUnavailable = errors.New("connection pool not initialized")
	// ErrConnection is returned when a storage connection could not be opened.
	ErrConnection = errors.New("storage connection failed")
	// ErrConstraintViolation is returned when a unique or foreign-key
	// constraint failed (duplicate barcode, duplicate plan name, orphan visit).
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrMemberNotFound is returned when a member lookup by id or barcode
	// found nothing. A normal negative result, not a storage failure.
	ErrMemberNotFound = errors.New("member not found")
	// ErrEntityNotFound is returned when any other entity lookup found nothing.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrValidation is returned when a caller-supplied field is missing or
	// invalid. Checked before touching the store.
	ErrValidation = errors.New("validation failed")
)

// QueryError wraps any other storage-execution failure. Write operations are
// rolled back before one of these is returned.
type QueryError struct {
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain and storage errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrMemberNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEMBER_NOT_FOUND")
	case errors.Is(err, ErrEntityNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConstraintViolation):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONSTRAINT_VIOLATION")
	case errors.Is(err, ErrPoolUnavailable), errors.Is(err, ErrConnection):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
