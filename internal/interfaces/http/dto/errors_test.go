package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		legacy string
		want   string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"INVALID_NAME", ErrCodeInvalidInput},
		{"INVALID_PASSWORD", ErrCodeInvalidInput},
		{"INVALID_STATUS", ErrCodeInvalidInput},
		{"FORBIDDEN", ErrCodeForbidden},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"TOTALLY_UNKNOWN", "TOTALLY_UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.legacy, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.legacy))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("INVALID_EMAIL", "Email address is not valid")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "Email address is not valid", resp.Error.Message)
	assert.False(t, resp.Error.Timestamp.IsZero())
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password must be at least 6 characters"},
	}
	resp := NewValidationErrorResponse("Validation failed", "req-123", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}
