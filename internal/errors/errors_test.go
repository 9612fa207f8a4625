package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{"validation", fmt.Errorf("%w: name is required", ErrValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"member not found", ErrMemberNotFound, http.StatusNotFound, "MEMBER_NOT_FOUND"},
		{"entity not found", fmt.Errorf("%w: plan %q", ErrEntityNotFound, "Gold"), http.StatusNotFound, "NOT_FOUND"},
		{"constraint", fmt.Errorf("%w: duplicate", ErrConstraintViolation), http.StatusConflict, "CONSTRAINT_VIOLATION"},
		{"pool unavailable", ErrPoolUnavailable, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"connection", ErrConnection, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"query error", &QueryError{Cause: fmt.Errorf("disk io")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", fmt.Errorf("anything else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestQueryErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("disk io")
	err := &QueryError{Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query failed")
}
