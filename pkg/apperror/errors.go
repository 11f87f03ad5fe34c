package apperror

import (
	"fmt"
	"net/http"
)

// AppError is the application error carried from an action handler to the
// response layer. Internal is logged but never shown to the client.
type AppError struct {
	Code       string `json:"code"`    // stable error code for the client
	Message    string `json:"message"` // user-facing message
	HTTPStatus int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewNotFoundError - no matching user/worker/record
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInvalidCredentialError - password digest mismatch
func NewInvalidCredentialError() *AppError {
	return &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewRoleMismatchError - correct credentials on the wrong login surface
func NewRoleMismatchError() *AppError {
	return &AppError{
		Code:       "ROLE_MISMATCH",
		Message:    "This account is registered under a different role",
		HTTPStatus: http.StatusForbidden,
	}
}

// NewEmailTakenError - signup conflict
func NewEmailTakenError() *AppError {
	return &AppError{
		Code:       "EMAIL_TAKEN",
		Message:    "An account with this email already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// NewInvalidOrExpiredTokenError - reset token rejection
func NewInvalidOrExpiredTokenError() *AppError {
	return &AppError{
		Code:       "INVALID_OR_EXPIRED_TOKEN",
		Message:    "Invalid or expired reset token",
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotLinkedError - no worker profile linked to the user
func NewNotLinkedError() *AppError {
	return &AppError{
		Code:       "NOT_LINKED",
		Message:    "No worker profile is linked to this account",
		HTTPStatus: http.StatusConflict,
	}
}

// NewValidationError - input validation failure
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError - missing or invalid session token
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError - authenticated but not allowed
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewDatabaseError - any underlying store failure, caught generically
func NewDatabaseError(operation string, internal error) *AppError {
	return &AppError{
		Code:       "DATABASE_ERROR",
		Message:    fmt.Sprintf("Database error during %s", operation),
		HTTPStatus: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewInternalError - unexpected server failure
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewRateLimitError - too many requests
func NewRateLimitError(message string) *AppError {
	return &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// IsAppError reports whether err is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// FromError converts any error to an AppError
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError("Internal server error", err)
}
