// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderSysType distinguishes the system-created default reminder from a
// user-configured one. At most one reminder of each type exists per activity.
type ReminderSysType string

const (
	ReminderSysTypeDefault ReminderSysType = "default"
	ReminderSysTypeUser    ReminderSysType = "user"
)

// Reminder represents a scheduled trigger tied to an activity. The sweeper
// dispatches it when NextAt falls inside the scan window.
type Reminder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActivityID uuid.UUID
	SysType    ReminderSysType
	NextAt     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Activity is the eagerly loaded owning activity. Populated only by
	// queries that join it (the sweep window query); nil otherwise.
	Activity *Activity
	// User is the eagerly loaded recipient, populated alongside Activity.
	User *User
}

// NewReminder creates a new Reminder entity.
func NewReminder(userID, activityID uuid.UUID, sysType ReminderSysType, nextAt time.Time) *Reminder {
	now := time.Now().UTC()

	return &Reminder{
		ID:         uuid.New(),
		UserID:     userID,
		ActivityID: activityID,
		SysType:    sysType,
		NextAt:     nextAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
