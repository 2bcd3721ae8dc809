// Package error defines domain-specific errors for the Engage CRM reminder engine.
package error

import "errors"

// Activity domain errors.
var (
	// ErrActivityNotFound is returned when an activity is not found in the system.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityNotScheduled is returned when an operation requires a start time
	// and the activity has none.
	ErrActivityNotScheduled = errors.New("activity has no start time")
)
