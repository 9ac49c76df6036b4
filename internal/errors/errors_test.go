package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{NewValidationError("email", "is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrDuplicateUser, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
		{ErrNotEmployer, http.StatusForbidden, "NOT_EMPLOYER"},
		{ErrNotSeeker, http.StatusForbidden, "NOT_SEEKER"},
		{fmt.Errorf("apply: %w", ErrAlreadyApplied), http.StatusConflict, "ALREADY_APPLIED"},
		{ErrApplicationNotFound, http.StatusNotFound, "APPLICATION_NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("email", "is required"))
	assert.True(t, IsValidation(err))
	assert.Equal(t, "register: email: is required", err.Error())
	assert.Equal(t, "bad input", NewValidationError("", "bad input").Error())
	assert.False(t, IsValidation(ErrUserNotFound))
}
