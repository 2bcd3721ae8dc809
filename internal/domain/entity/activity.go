// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityStatus represents the workflow status of an activity.
type ActivityStatus string

const (
	ActivityStatusStarted    ActivityStatus = "started"
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusCompleted  ActivityStatus = "completed"
	ActivityStatusDeferred   ActivityStatus = "deferred"
)

// ReminderUnit represents the unit of a user-defined reminder cadence.
type ReminderUnit string

const (
	ReminderUnitMinutes ReminderUnit = "minutes"
	ReminderUnitHours   ReminderUnit = "hours"
	ReminderUnitDays    ReminderUnit = "days"
	ReminderUnitWeeks   ReminderUnit = "weeks"
)

// ReminderChannel represents the delivery channel a user picked for a
// custom reminder.
type ReminderChannel string

const (
	ReminderChannelNotification ReminderChannel = "notification"
	ReminderChannelEmail        ReminderChannel = "email"
)

// Activity represents a calendar-like business event (call, meeting,
// roadshow slot) in the Engage CRM system.
type Activity struct {
	ID             uuid.UUID
	CreatedBy      uuid.UUID
	ActivityTypeID uuid.UUID
	Subject        string
	StartedAt      *time.Time
	EndedAt        *time.Time
	Status         *ActivityStatus
	ReminderTime   *int
	ReminderUnit   *ReminderUnit
	ReminderType   *ReminderChannel
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time // Soft-delete support
}

// NewActivity creates a new Activity entity.
func NewActivity(createdBy, activityTypeID uuid.UUID, subject string, startedAt, endedAt *time.Time) *Activity {
	now := time.Now().UTC()

	return &Activity{
		ID:             uuid.New(),
		CreatedBy:      createdBy,
		ActivityTypeID: activityTypeID,
		Subject:        subject,
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsCompleted reports whether the activity has been marked completed.
func (a *Activity) IsCompleted() bool {
	return a.Status != nil && *a.Status == ActivityStatusCompleted
}

// HasCustomReminder reports whether the user configured a custom reminder
// cadence on the activity. Both the magnitude and the unit must be set.
func (a *Activity) HasCustomReminder() bool {
	return a.ReminderTime != nil && a.ReminderUnit != nil
}

// ReminderChannelOrDefault returns the channel a custom reminder should be
// delivered on, falling back to notification when none was chosen.
func (a *Activity) ReminderChannelOrDefault() ReminderChannel {
	if a.ReminderType != nil {
		return *a.ReminderType
	}
	return ReminderChannelNotification
}
