// Package queue implements the Redis-backed task channel between the main
// API's CRUD handlers and this worker.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/application/usecase/goaltracker"
	"github.com/engage-crm/backend/internal/application/usecase/reminder"
)

// Consumer pops tasks off the Redis list and routes them to the reminder
// and goal tracker use cases. Every handler is idempotent against current
// DB state, so a task that is delivered again after a failure is safe to
// re-run.
type Consumer struct {
	client       *redis.Client
	key          string
	blockTimeout time.Duration

	reconcile        *reminder.ReconcileRemindersUseCase
	scheduleChange   *goaltracker.ScheduleChangeUseCase
	bulkStatusChange *goaltracker.BulkStatusChangeUseCase
	activityDelete   *goaltracker.ActivityDeleteUseCase
}

// NewConsumer creates a new task queue consumer.
func NewConsumer(
	client *redis.Client,
	key string,
	blockTimeout time.Duration,
	reconcile *reminder.ReconcileRemindersUseCase,
	scheduleChange *goaltracker.ScheduleChangeUseCase,
	bulkStatusChange *goaltracker.BulkStatusChangeUseCase,
	activityDelete *goaltracker.ActivityDeleteUseCase,
) *Consumer {
	return &Consumer{
		client:           client,
		key:              key,
		blockTimeout:     blockTimeout,
		reconcile:        reconcile,
		scheduleChange:   scheduleChange,
		bulkStatusChange: bulkStatusChange,
		activityDelete:   activityDelete,
	}
}

// Start begins the consume loop. It blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	slog.Info("Task consumer started", "queue", c.key)

	for {
		if ctx.Err() != nil {
			slog.Info("Task consumer shutting down")
			return
		}

		values, err := c.client.BLPop(ctx, c.blockTimeout, c.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				slog.Info("Task consumer shutting down")
				return
			}
			slog.Error("Failed to pop task", "queue", c.key, "error", err)
			time.Sleep(time.Second)
			continue
		}

		// BLPop returns [key, value].
		if len(values) != 2 {
			continue
		}
		c.handle(ctx, []byte(values[1]))
	}
}

// handle decodes one task frame and routes it. Failures are logged and the
// loop moves on: a malformed frame is dropped, a handler failure is left to
// the producer's redelivery policy.
func (c *Consumer) handle(ctx context.Context, frame []byte) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		slog.Error("Dropping malformed task frame", "error", err)
		return
	}

	logger := slog.With("task_type", env.Type, "enqueued_at", env.EnqueuedAt)

	var err error
	switch env.Type {
	case TaskReconcileReminders:
		var p reconcilePayload
		if err = json.Unmarshal(env.Payload, &p); err == nil {
			_, err = c.reconcile.Execute(ctx, reminder.ReconcileRemindersInput{ActivityID: p.ActivityID})
		}
	case TaskScheduleChange:
		var p adapter.ScheduleChangeTask
		if err = json.Unmarshal(env.Payload, &p); err == nil {
			_, err = c.scheduleChange.Execute(ctx, goaltracker.ScheduleChangeInput{
				ActivityID:        p.ActivityID,
				OldStartedAt:      p.OldStartedAt,
				OldActivityTypeID: p.OldActivityTypeID,
			})
		}
	case TaskBulkStatusChange:
		var p adapter.BulkStatusChangeTask
		if err = json.Unmarshal(env.Payload, &p); err == nil {
			_, err = c.bulkStatusChange.Execute(ctx, goaltracker.BulkStatusChangeInput{
				AnchorGoalID:  p.AnchorGoalID,
				CompletedIDs:  p.CompletedIDs,
				IncompleteIDs: p.IncompleteIDs,
			})
		}
	case TaskActivityDelete:
		var p adapter.ActivityDeleteTask
		if err = json.Unmarshal(env.Payload, &p); err == nil {
			_, err = c.activityDelete.Execute(ctx, goaltracker.ActivityDeleteInput{
				ActivityID:     p.ActivityID,
				ActivityTypeID: p.ActivityTypeID,
				OwnerID:        p.OwnerID,
			})
		}
	default:
		logger.Error("Dropping task of unknown type")
		return
	}

	if err != nil {
		logger.Error("Task handler failed", "error", err)
		return
	}
	logger.Debug("Task handled")
}
