// Package notification delivers in-app reminders: a durable notification
// row plus a push on the recipient's realtime channel.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
)

// ChannelPrefix is the realtime channel namespace the websocket gateway
// subscribes to, one channel per user.
const ChannelPrefix = "notifications:"

// pushEvent is the JSON payload published on the realtime channel.
type pushEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	ActivityID string `json:"activity_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Dispatcher implements adapter.NotificationDispatcher on a notification
// table and a Redis pub/sub channel.
type Dispatcher struct {
	notifications adapter.NotificationRepository
	redis         *redis.Client
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(notifications adapter.NotificationRepository, redisClient *redis.Client) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		redis:         redisClient,
	}
}

// SendActivityReminder records a reminder notification for the activity's
// owner and pushes it on their realtime channel. The row is the durable
// copy; a failed publish is logged and swallowed because clients fetch
// unread notifications on reconnect anyway.
func (d *Dispatcher) SendActivityReminder(ctx context.Context, activity *entity.Activity) error {
	message := fmt.Sprintf("%q is coming up", activity.Subject)
	if activity.StartedAt != nil {
		message = fmt.Sprintf("%q starts at %s", activity.Subject, activity.StartedAt.UTC().Format("15:04 MST, Jan 2"))
	}

	activityID := activity.ID
	n := entity.NewNotification(
		activity.CreatedBy,
		entity.NotificationTypeActivityReminder,
		"Activity reminder",
		message,
		&activityID,
	)

	if err := d.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	payload, err := json.Marshal(pushEvent{
		ID:         n.ID.String(),
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		ActivityID: activity.ID.String(),
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("Failed to marshal notification push event",
			"notification_id", n.ID,
			"error", err,
		)
		return nil
	}

	channel := ChannelPrefix + activity.CreatedBy.String()
	if err := d.redis.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Error("Failed to publish notification push event",
			"notification_id", n.ID,
			"channel", channel,
			"error", err,
		)
	}

	return nil
}

// Ensure Dispatcher implements the sweep-facing interface.
var _ adapter.NotificationDispatcher = (*Dispatcher)(nil)
