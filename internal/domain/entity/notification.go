// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification for the client UI.
type NotificationType string

const (
	NotificationTypeActivityReminder NotificationType = "activity_reminder"
)

// Notification represents an in-app notification record. The realtime
// channel only carries a transient event; this row is the durable copy the
// client fetches on reconnect.
type Notification struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       NotificationType
	Title      string
	Message    string
	ActivityID *uuid.UUID
	Read       bool
	CreatedAt  time.Time
}

// NewNotification creates a new unread Notification.
func NewNotification(userID uuid.UUID, notifType NotificationType, title, message string, activityID *uuid.UUID) *Notification {
	return &Notification{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       notifType,
		Title:      title,
		Message:    message,
		ActivityID: activityID,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}
}
