package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("movie 3: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"validation", fmt.Errorf("%w: id must be positive", ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("dial tcp: refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesDetail(t *testing.T) {
	unauthorized := MapErrorToHTTP(fmt.Errorf("token expired: %w", ErrUnauthorized))
	assert.Equal(t, ErrUnauthorized.Error(), unauthorized.Message)

	internal := MapErrorToHTTP(errors.New("password for root is hunter2"))
	assert.Equal(t, "internal server error", internal.ToErrorResponse().Error)
}
