package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the publication pipeline
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors, detected at setup and never retried
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"

	// Ordering errors
	ErrSequenceViolation ErrorCode = "SEQUENCE_VIOLATION"

	// Conflict and publication errors
	ErrTargetExists          ErrorCode = "TARGET_EXISTS"
	ErrCleanupFailure        ErrorCode = "CLEANUP_FAILURE"
	ErrRenameFailure         ErrorCode = "RENAME_FAILURE"
	ErrRelocationFailure     ErrorCode = "RELOCATION_FAILURE"
	ErrUnresolvedPlaceholder ErrorCode = "UNRESOLVED_PLACEHOLDER"
	ErrEmptyMoveTarget       ErrorCode = "EMPTY_MOVE_TARGET"

	// Collaborator I/O errors
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// SeqfileError represents a structured error with code and details
type SeqfileError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SeqfileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SeqfileError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SeqfileError) Is(target error) bool {
	var targetErr *SeqfileError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SeqfileError with the given code and message
func New(code ErrorCode, message string) *SeqfileError {
	return &SeqfileError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SeqfileError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SeqfileError {
	return &SeqfileError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SeqfileError
func Wrap(err error, code ErrorCode, message string) *SeqfileError {
	if err == nil {
		return nil
	}
	return &SeqfileError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SeqfileError {
	if err == nil {
		return nil
	}
	return &SeqfileError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SeqfileError) WithDetail(key string, value interface{}) *SeqfileError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sfErr *SeqfileError
	if errors.As(err, &sfErr) {
		return sfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// the error is not a SeqfileError
func GetErrorCode(err error) ErrorCode {
	var sfErr *SeqfileError
	if errors.As(err, &sfErr) {
		return sfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SeqfileError
func GetErrorDetails(err error) map[string]interface{} {
	var sfErr *SeqfileError
	if errors.As(err, &sfErr) {
		return sfErr.Details
	}
	return nil
}
