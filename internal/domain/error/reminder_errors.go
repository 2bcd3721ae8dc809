// Package error defines domain-specific errors for the Engage CRM reminder engine.
package error

import "errors"

// Reminder domain errors.
var (
	// ErrReminderNotFound is returned when a reminder is not found in the system.
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrReminderWriteFailed is returned when a reminder row could not be persisted.
	ErrReminderWriteFailed = errors.New("failed to write reminder")

	// ErrReminderDeleteFailed is returned when reminder rows could not be deleted.
	ErrReminderDeleteFailed = errors.New("failed to delete reminders")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: RMD-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	// Persistence errors (01XXXX)
	ErrCodeReminderNotFound     ReminderErrorCode = "RMD-010001"
	ErrCodeReminderWriteFailed  ReminderErrorCode = "RMD-010002"
	ErrCodeReminderDeleteFailed ReminderErrorCode = "RMD-010003"

	// Dispatch errors (02XXXX)
	ErrCodeReminderDispatchFailed ReminderErrorCode = "RMD-020001"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
