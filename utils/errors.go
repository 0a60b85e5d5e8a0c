package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds surfaced by the core operations
const (
	KindValidation      = "VALIDATION"
	KindDuplicate       = "DUPLICATE"
	KindCycle           = "CYCLE"
	KindNotFound        = "NOT_FOUND"
	KindUnavailable     = "UNAVAILABLE"
	KindAlreadyReturned = "ALREADY_RETURNED"
	KindUnauthorized    = "UNAUTHORIZED"
	KindForbidden       = "FORBIDDEN"
	KindStorage         = "STORAGE"
)

// AppError represents an application error with an HTTP status, a kind
// tag, and optionally the offending field
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error naming the bad field
func NewValidationError(message, field string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message, Field: field}
}

// NewDuplicateError creates a uniqueness-violation error
func NewDuplicateError(message, field string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindDuplicate, Message: message, Field: field}
}

// NewCycleError creates a hierarchy-integrity error
func NewCycleError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindCycle, Message: message, Field: "parent_id"}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

// NewUnavailableError creates an insufficient-inventory error
func NewUnavailableError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindUnavailable, Message: message}
}

// NewAlreadyReturnedError creates an invalid-status-transition error
func NewAlreadyReturnedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindAlreadyReturned, Message: message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError creates a 403 error
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: message}
}

// NewStorageError creates a filesystem/database I/O error
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Kind: KindStorage, Message: message, Err: err}
}

// GetAppError returns the AppError if err is (or wraps) one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// RespondError maps an error to the standard JSON error envelope.
// Business errors carry their own status and field; anything else is
// logged and surfaced as a generic 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	if appErr := GetAppError(err); appErr != nil {
		var detail interface{}
		if appErr.Field != "" {
			detail = gin.H{"field": appErr.Field}
		}
		Error(c, appErr.Code, appErr.Message, detail)
		return
	}
	LogError("Unexpected error: %v", err)
	InternalServerError(c, "Something went wrong", nil)
}
