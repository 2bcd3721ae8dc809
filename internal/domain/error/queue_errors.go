// Package error defines domain-specific errors for the Engage CRM reminder engine.
package error

import "errors"

// Task queue errors.
var (
	// ErrTaskEnqueueFailed is returned when a task could not be pushed onto the queue.
	ErrTaskEnqueueFailed = errors.New("failed to enqueue task")

	// ErrMalformedTask is returned when a queued payload cannot be decoded.
	ErrMalformedTask = errors.New("malformed task payload")

	// ErrUnknownTaskType is returned when a queued payload names a task type
	// this worker has no handler for.
	ErrUnknownTaskType = errors.New("unknown task type")
)

// QueueErrorCode defines error codes for task queue errors.
// Format: QUE-XXYYYY where XX is category and YYYY is specific error.
type QueueErrorCode string

const (
	ErrCodeTaskEnqueueFailed QueueErrorCode = "QUE-010001"
	ErrCodeMalformedTask     QueueErrorCode = "QUE-010002"
	ErrCodeUnknownTaskType   QueueErrorCode = "QUE-010003"
)

// QueueError represents a task queue error with code and message.
type QueueError struct {
	Code    QueueErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *QueueError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *QueueError) Unwrap() error {
	return e.Err
}

// NewQueueError creates a new QueueError with the given code and message.
func NewQueueError(code QueueErrorCode, message string, err error) *QueueError {
	return &QueueError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
