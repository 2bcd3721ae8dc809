// Package error defines domain-specific errors for the Engage CRM reminder engine.
package error

import "errors"

// Goal tracker domain errors.
var (
	// ErrGoalTrackerNotFound is returned when a goal tracker is not found in the system.
	ErrGoalTrackerNotFound = errors.New("goal tracker not found")

	// ErrGoalProgressWriteFailed is returned when a goal tracker's derived
	// progress could not be persisted.
	ErrGoalProgressWriteFailed = errors.New("failed to write goal tracker progress")

	// ErrOverlappingStatusSets is returned when a bulk status change passes
	// completed and incomplete id sets that share an id.
	ErrOverlappingStatusSets = errors.New("completed and incomplete id sets overlap")
)

// GoalTrackerErrorCode defines error codes for goal tracker errors.
// Format: GTR-XXYYYY where XX is category and YYYY is specific error.
type GoalTrackerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeOverlappingStatusSets GoalTrackerErrorCode = "GTR-010001"

	// Persistence errors (02XXXX)
	ErrCodeGoalTrackerNotFound     GoalTrackerErrorCode = "GTR-020001"
	ErrCodeGoalProgressWriteFailed GoalTrackerErrorCode = "GTR-020002"
)

// GoalTrackerError represents a goal tracker error with code and message.
type GoalTrackerError struct {
	Code    GoalTrackerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalTrackerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalTrackerError) Unwrap() error {
	return e.Err
}

// NewGoalTrackerError creates a new GoalTrackerError with the given code and message.
func NewGoalTrackerError(code GoalTrackerErrorCode, message string, err error) *GoalTrackerError {
	return &GoalTrackerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
