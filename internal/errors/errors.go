package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when registering a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken is returned when a password reset token is missing or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrQuotaExceeded is returned when the daily activity cap is reached.
	ErrQuotaExceeded = errors.New("daily activity limit reached (2 per day)")
	// ErrEditWindowExpired is returned when an activity is older than the edit window.
	ErrEditWindowExpired = errors.New("edit time expired, cannot edit after 1 hour")
	// ErrEditLimitReached is returned when an activity has used both allowed edits.
	ErrEditLimitReached = errors.New("activity can only be edited 2 times")
	// ErrNoChangesApplied is returned when an accepted edit modified nothing.
	ErrNoChangesApplied = errors.New("no changes were made")
	// ErrActivityNotFound covers both a missing id and a wrong owner so callers
	// cannot probe for other users' activities.
	ErrActivityNotFound = errors.New("activity not found or unauthorized")
)

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
	switch err {
	case ErrUserAlreadyExists:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ALREADY_EXISTS")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidResetToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RESET_TOKEN")
	case ErrQuotaExceeded:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "QUOTA_EXCEEDED")
	case ErrEditWindowExpired:
		return NewHTTPError(http.StatusForbidden, err.Error(), "EDIT_WINDOW_EXPIRED")
	case ErrEditLimitReached:
		return NewHTTPError(http.StatusForbidden, err.Error(), "EDIT_LIMIT_REACHED")
	case ErrNoChangesApplied:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_CHANGES_APPLIED")
	case ErrActivityNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACTIVITY_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
