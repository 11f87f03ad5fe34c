package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err        *AppError
		code       string
		httpStatus int
	}{
		{NewNotFoundError("missing"), "NOT_FOUND", http.StatusNotFound},
		{NewInvalidCredentialError(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{NewRoleMismatchError(), "ROLE_MISMATCH", http.StatusForbidden},
		{NewEmailTakenError(), "EMAIL_TAKEN", http.StatusConflict},
		{NewInvalidOrExpiredTokenError(), "INVALID_OR_EXPIRED_TOKEN", http.StatusBadRequest},
		{NewNotLinkedError(), "NOT_LINKED", http.StatusConflict},
		{NewValidationError("bad"), "VALIDATION_ERROR", http.StatusBadRequest},
		{NewUnauthorizedError("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbiddenError("nope"), "FORBIDDEN", http.StatusForbidden},
		{NewDatabaseError("lookup", errors.New("boom")), "DATABASE_ERROR", http.StatusInternalServerError},
		{NewInternalError("oops", nil), "INTERNAL_ERROR", http.StatusInternalServerError},
		{NewRateLimitError("slow down"), "RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		assert.NotEmpty(t, tt.err.Message, tt.code)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("booking insert", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromError(t *testing.T) {
	appErr := NewNotFoundError("missing")
	assert.Same(t, appErr, FromError(appErr))

	plain := errors.New("boom")
	wrapped := FromError(plain)
	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(plain))
}
