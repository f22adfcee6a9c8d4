package apierrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codetroops/pos-lebanon/internal/models"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	ErrCodeConfigNotFound        ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodePaymentMethodNotFound ErrorCode = "PAYMENT_METHOD_NOT_FOUND"
	ErrCodeAlreadyExists         ErrorCode = "ALREADY_EXISTS"
	ErrCodeValidationError       ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidJSON           ErrorCode = "INVALID_JSON"
	ErrCodeStorageUnavailable    ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	ErrCodeRateLimited           ErrorCode = "RATE_LIMITED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteError writes a standardized error response and aborts the gin chain
func WriteError(c *gin.Context, code ErrorCode, message string, statusCode int, details map[string]string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteValidationError writes a 400 response for a models.ValidationError or a plain message
func WriteValidationError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		WriteError(c, ErrCodeValidationError, verr.Message, http.StatusBadRequest,
			map[string]string{"field": verr.Field})
		return
	}
	WriteError(c, ErrCodeValidationError, err.Error(), http.StatusBadRequest, nil)
}

// MapStorageError maps storage errors to HTTP responses
func MapStorageError(err error, resourceType string) (ErrorCode, string, int) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		switch resourceType {
		case "config":
			return ErrCodeConfigNotFound, "POS config not found", http.StatusNotFound
		case "payment_method":
			return ErrCodePaymentMethodNotFound, "Payment method not found", http.StatusNotFound
		default:
			return ErrCodeConfigNotFound, "Resource not found", http.StatusNotFound
		}

	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrCodeAlreadyExists, "Resource already exists", http.StatusConflict

	case errors.Is(err, storage.ErrStorageUnavailable):
		return ErrCodeStorageUnavailable, "Storage service unavailable", http.StatusServiceUnavailable

	default:
		return ErrCodeInternal, "Internal server error", http.StatusInternalServerError
	}
}

// WriteStorageError maps err with MapStorageError and writes the response
func WriteStorageError(c *gin.Context, err error, resourceType string) {
	code, message, status := MapStorageError(err, resourceType)
	WriteError(c, code, message, status, nil)
}
