package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrJobNotFound is returned when a job is not found or not owned by the caller.
	ErrJobNotFound = errors.New("job not found")
	// ErrNotEmployer is returned when an employer-only operation is attempted by another user type.
	ErrNotEmployer = errors.New("user is not an employer")
	// ErrNotSeeker is returned when a seeker-only operation is attempted by another user type.
	ErrNotSeeker = errors.New("user is not a job seeker")
	// ErrAlreadyApplied is returned when the seeker already applied to the job.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrApplicationNotFound is returned when no application exists for the pair.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError rejects input before any persistence call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	if IsValidation(err) {
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	}
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusConflict, ErrDuplicateUser.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrJobNotFound):
		return NewHTTPError(http.StatusNotFound, ErrJobNotFound.Error(), "JOB_NOT_FOUND")
	case errors.Is(err, ErrNotEmployer):
		return NewHTTPError(http.StatusForbidden, ErrNotEmployer.Error(), "NOT_EMPLOYER")
	case errors.Is(err, ErrNotSeeker):
		return NewHTTPError(http.StatusForbidden, ErrNotSeeker.Error(), "NOT_SEEKER")
	case errors.Is(err, ErrAlreadyApplied):
		return NewHTTPError(http.StatusConflict, ErrAlreadyApplied.Error(), "ALREADY_APPLIED")
	case errors.Is(err, ErrApplicationNotFound):
		return NewHTTPError(http.StatusNotFound, ErrApplicationNotFound.Error(), "APPLICATION_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
