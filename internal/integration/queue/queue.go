// Package queue implements the Redis-backed task channel between the main
// API's CRUD handlers and this worker.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/engage-crm/backend/internal/application/adapter"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// TaskType identifies which handler a queued task routes to.
type TaskType string

const (
	TaskReconcileReminders TaskType = "reminders.reconcile"
	TaskScheduleChange     TaskType = "goals.schedule_change"
	TaskBulkStatusChange   TaskType = "goals.bulk_status_change"
	TaskActivityDelete     TaskType = "goals.activity_delete"
)

// envelope is the JSON frame every queued task travels in.
type envelope struct {
	Type       TaskType        `json:"type"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Payload    json.RawMessage `json:"payload"`
}

// reconcilePayload is the payload of a TaskReconcileReminders task.
type reconcilePayload struct {
	ActivityID uuid.UUID `json:"activity_id"`
}

// RedisQueue implements adapter.TaskQueue on a Redis list. Tasks are
// pushed with LPUSH and consumed with BLPOP from the other end.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a new Redis-backed task queue.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{
		client: client,
		key:    key,
	}
}

// EnqueueReconcile schedules a reminder reconciliation for an activity.
func (q *RedisQueue) EnqueueReconcile(ctx context.Context, activityID uuid.UUID) error {
	return q.push(ctx, TaskReconcileReminders, reconcilePayload{ActivityID: activityID})
}

// EnqueueScheduleChange schedules a goal membership migration.
func (q *RedisQueue) EnqueueScheduleChange(ctx context.Context, task adapter.ScheduleChangeTask) error {
	return q.push(ctx, TaskScheduleChange, task)
}

// EnqueueBulkStatusChange schedules goal recomputation after a bulk status change.
func (q *RedisQueue) EnqueueBulkStatusChange(ctx context.Context, task adapter.BulkStatusChangeTask) error {
	return q.push(ctx, TaskBulkStatusChange, task)
}

// EnqueueActivityDelete schedules goal membership cleanup for a deleted activity.
func (q *RedisQueue) EnqueueActivityDelete(ctx context.Context, task adapter.ActivityDeleteTask) error {
	return q.push(ctx, TaskActivityDelete, task)
}

func (q *RedisQueue) push(ctx context.Context, taskType TaskType, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domainerror.NewQueueError(
			domainerror.ErrCodeTaskEnqueueFailed,
			"failed to marshal task payload",
			err,
		)
	}

	frame, err := json.Marshal(envelope{
		Type:       taskType,
		EnqueuedAt: time.Now().UTC(),
		Payload:    raw,
	})
	if err != nil {
		return domainerror.NewQueueError(
			domainerror.ErrCodeTaskEnqueueFailed,
			"failed to marshal task envelope",
			err,
		)
	}

	if err := q.client.LPush(ctx, q.key, frame).Err(); err != nil {
		return domainerror.NewQueueError(
			domainerror.ErrCodeTaskEnqueueFailed,
			"failed to push task",
			err,
		)
	}
	return nil
}

// Ensure RedisQueue implements the enqueue-side interface.
var _ adapter.TaskQueue = (*RedisQueue)(nil)
