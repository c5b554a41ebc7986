package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error categories group failures by which stage of a request they belong to.
const (
	CategoryValidation = "validation"
	CategoryResource   = "resource"
	CategoryConflict   = "conflict"
	CategorySystem     = "system"
)

// Severity levels attached to domain errors.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Severity  string    `json:"severity,omitempty"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Err       error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Timestamp: time.Now().UTC()}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err, Timestamp: time.Now().UTC()}
}

// WithCategory returns a copy of the error carrying category and severity.
func (e *Error) WithCategory(category, severity string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Category = category
	clone.Severity = severity
	return &clone
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials  = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount     = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized        = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrConflict            = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation          = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrBookingFailed       = New("BOOKING_FAILED", http.StatusUnprocessableEntity, "booking request failed")
	ErrNoAvailableTeachers = New("NO_AVAILABLE_TEACHERS", http.StatusNotFound, "no teachers available for the requested criteria")
)

// ErrCacheMiss signals a cache lookup that found no entry. It is a sentinel,
// never surfaced to API clients.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	clone.Timestamp = time.Now().UTC()
	return &clone
}
