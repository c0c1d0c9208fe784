// Package errors provides application-level error types and utilities.
// It defines the typed failures the work-order portal surfaces to callers:
// validation, not found, authorization, illegal transitions, media rejection.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation_error"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeUnauthenticated   ErrorType = "unauthenticated"
	ErrorTypeForbidden         ErrorType = "forbidden"
	ErrorTypeInvalidTransition ErrorType = "invalid_transition"
	ErrorTypeUnsupportedMedia  ErrorType = "unsupported_media"
	ErrorTypePayloadTooLarge   ErrorType = "payload_too_large"
	ErrorTypeInternal          ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error. Used for optimistic concurrency
// failures: the aggregate changed between read and write.
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewUnauthenticatedError creates an error for requests with no resolvable actor
func NewUnauthenticatedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthenticated, http.StatusUnauthorized, message, details...)
}

// NewForbiddenError creates an error for actors lacking role or ownership rights
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

// NewInvalidTransitionError creates an error for status preconditions that do not hold
func NewInvalidTransitionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidTransition, http.StatusConflict, message, details...)
}

// NewUnsupportedMediaError creates an error for file uploads of a rejected type
func NewUnsupportedMediaError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnsupportedMedia, http.StatusUnsupportedMediaType, message, details...)
}

// NewPayloadTooLargeError creates an error for uploads over the size ceiling
func NewPayloadTooLargeError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePayloadTooLarge, http.StatusRequestEntityTooLarge, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool { return isType(err, ErrorTypeConflict) }

// IsUnauthenticatedError checks if the error is an unauthenticated error
func IsUnauthenticatedError(err error) bool { return isType(err, ErrorTypeUnauthenticated) }

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool { return isType(err, ErrorTypeForbidden) }

// IsInvalidTransitionError checks if the error is an invalid transition error
func IsInvalidTransitionError(err error) bool { return isType(err, ErrorTypeInvalidTransition) }

// IsUnsupportedMediaError checks if the error is an unsupported media error
func IsUnsupportedMediaError(err error) bool { return isType(err, ErrorTypeUnsupportedMedia) }

// IsPayloadTooLargeError checks if the error is a payload too large error
func IsPayloadTooLargeError(err error) bool { return isType(err, ErrorTypePayloadTooLarge) }

// IsInternalError checks if the error is an internal error
func IsInternalError(err error) bool { return isType(err, ErrorTypeInternal) }
