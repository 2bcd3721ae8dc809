// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleChangeTask carries the pre-change schedule of an updated activity
// so the recompute engine can migrate goal membership.
type ScheduleChangeTask struct {
	ActivityID        uuid.UUID  `json:"activity_id"`
	OldStartedAt      *time.Time `json:"old_started_at"`
	OldActivityTypeID uuid.UUID  `json:"old_activity_type_id"`
}

// BulkStatusChangeTask carries the result of a bulk completed/incomplete
// split, anchored to the goal the operation originated from.
type BulkStatusChangeTask struct {
	AnchorGoalID  uuid.UUID   `json:"anchor_goal_id"`
	CompletedIDs  []uuid.UUID `json:"completed_ids"`
	IncompleteIDs []uuid.UUID `json:"incomplete_ids"`
}

// ActivityDeleteTask identifies a soft-deleted activity whose goal
// memberships must be released.
type ActivityDeleteTask struct {
	ActivityID     uuid.UUID `json:"activity_id"`
	ActivityTypeID uuid.UUID `json:"activity_type_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
}

// TaskQueue is the enqueue side of the fire-and-forget task channel between
// the main API's CRUD handlers and this worker. Handlers are idempotent
// against current DB state, so repeated delivery of the same task is safe.
type TaskQueue interface {
	// EnqueueReconcile schedules a reminder reconciliation for an activity.
	EnqueueReconcile(ctx context.Context, activityID uuid.UUID) error

	// EnqueueScheduleChange schedules a goal membership migration after an
	// activity's start time or type changed.
	EnqueueScheduleChange(ctx context.Context, task ScheduleChangeTask) error

	// EnqueueBulkStatusChange schedules goal recomputation after a bulk
	// completed/incomplete status change.
	EnqueueBulkStatusChange(ctx context.Context, task BulkStatusChangeTask) error

	// EnqueueActivityDelete schedules goal membership cleanup after an
	// activity was soft-deleted.
	EnqueueActivityDelete(ctx context.Context, task ActivityDeleteTask) error
}
