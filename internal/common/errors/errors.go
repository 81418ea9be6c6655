package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// General errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"

	// Giveaway lifecycle errors
	ErrCodeAlreadyActive    ErrorCode = "ALREADY_ACTIVE"
	ErrCodeNoActiveGiveaway ErrorCode = "NO_ACTIVE_GIVEAWAY"
	ErrCodeAlreadyJoined    ErrorCode = "ALREADY_JOINED"
	ErrCodeNoParticipants   ErrorCode = "NO_PARTICIPANTS"

	// Collaborator errors
	ErrCodeLedgerUnavailable  ErrorCode = "LEDGER_UNAVAILABLE"
	ErrCodeGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE"

	// Storage errors
	ErrCodeStorageError ErrorCode = "STORAGE_ERROR"
)

// AppError is a typed application error carrying a code and optional details.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether the error is an expected user-facing outcome
// rather than a fault.
func (e *AppError) IsRecoverable() bool {
	switch e.Code {
	case ErrCodeAlreadyActive, ErrCodeNoActiveGiveaway, ErrCodeAlreadyJoined, ErrCodeNoParticipants:
		return true
	}
	return false
}

// WithDetail attaches a detail value to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewLedgerError wraps a failure of the participant ledger collaborator.
func NewLedgerError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeLedgerUnavailable, fmt.Sprintf("Ledger operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewGatewayError wraps a failure of the messaging gateway collaborator.
func NewGatewayError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeGatewayUnavailable, fmt.Sprintf("Gateway operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewStorageError wraps a failure of the giveaway store.
func NewStorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageError, fmt.Sprintf("Storage operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError extracts an AppError from err if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
