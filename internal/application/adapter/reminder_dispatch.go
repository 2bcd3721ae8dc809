// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// NotificationDispatcher delivers an in-app reminder: a durable notification
// record plus a push on the recipient's realtime channel. Duplicate
// deliveries for the same activity are acceptable; callers do not dedupe.
type NotificationDispatcher interface {
	SendActivityReminder(ctx context.Context, activity *entity.Activity) error
}

// ReminderMailer delivers an email reminder for an activity to its owner.
// Delivery is best-effort; a failure is reported to the caller but never
// blocks sibling reminders.
type ReminderMailer interface {
	SendActivityReminder(ctx context.Context, activity *entity.Activity, user *entity.User) error
}
