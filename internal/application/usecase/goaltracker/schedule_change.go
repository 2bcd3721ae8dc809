// Package goaltracker contains the goal tracker recompute use cases. They
// keep every tracker's derived progress (goal_count and the completed
// activity id set) consistent as individual activities change, without
// rescanning all activities per goal.
package goaltracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/application/adapter"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// ScheduleChangeInput represents the input for a goal membership migration
// after an activity's start time or type changed.
type ScheduleChangeInput struct {
	ActivityID        uuid.UUID
	OldStartedAt      *time.Time
	OldActivityTypeID uuid.UUID
}

// ScheduleChangeOutput represents the result of a goal membership migration.
type ScheduleChangeOutput struct {
	RemovedFrom int
	AddedTo     int
}

// ScheduleChangeUseCase migrates a completed activity between the goal
// trackers its old and new schedule match.
type ScheduleChangeUseCase struct {
	activityRepo adapter.ActivityRepository
	goalRepo     adapter.GoalTrackerRepository
}

// NewScheduleChangeUseCase creates a new ScheduleChangeUseCase instance.
func NewScheduleChangeUseCase(
	activityRepo adapter.ActivityRepository,
	goalRepo adapter.GoalTrackerRepository,
) *ScheduleChangeUseCase {
	return &ScheduleChangeUseCase{
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
	}
}

// Execute removes the activity from trackers matching its old schedule and
// adds it to trackers matching the current one. Each tracker is written
// independently; a failed tracker write is logged, skipped, and reported at
// the end so the queue's retry policy can re-run the whole idempotent task.
func (uc *ScheduleChangeUseCase) Execute(ctx context.Context, input ScheduleChangeInput) (*ScheduleChangeOutput, error) {
	activity, err := uc.activityRepo.FindByID(ctx, input.ActivityID)
	if err != nil {
		if errors.Is(err, domainerror.ErrActivityNotFound) {
			// Deleted before this deferred task ran; the delete path owns
			// the cleanup.
			return &ScheduleChangeOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	// Untracked activities carry no goal membership to migrate.
	if !activity.IsCompleted() {
		return &ScheduleChangeOutput{}, nil
	}

	// Nothing moved: same type and same start as before.
	if activity.ActivityTypeID == input.OldActivityTypeID && equalTimes(activity.StartedAt, input.OldStartedAt) {
		return &ScheduleChangeOutput{}, nil
	}

	output := &ScheduleChangeOutput{}
	var failed []error

	if input.OldStartedAt != nil {
		oldGoals, err := uc.goalRepo.FindMatching(ctx, activity.CreatedBy, input.OldActivityTypeID, *input.OldStartedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to find trackers for old schedule: %w", err)
		}
		for _, goal := range oldGoals {
			if !goal.RemoveActivity(activity.ID) {
				continue
			}
			if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
				slog.Error("Failed to remove activity from tracker",
					"goal_id", goal.ID,
					"activity_id", activity.ID,
					"error", err,
				)
				failed = append(failed, err)
				continue
			}
			output.RemovedFrom++
		}
	}

	if activity.StartedAt != nil {
		newGoals, err := uc.goalRepo.FindMatching(ctx, activity.CreatedBy, activity.ActivityTypeID, *activity.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to find trackers for new schedule: %w", err)
		}
		for _, goal := range newGoals {
			if !goal.AddActivity(activity.ID) {
				continue
			}
			if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
				slog.Error("Failed to add activity to tracker",
					"goal_id", goal.ID,
					"activity_id", activity.ID,
					"error", err,
				)
				failed = append(failed, err)
				continue
			}
			output.AddedTo++
		}
	}

	if len(failed) > 0 {
		return output, domainerror.NewGoalTrackerError(
			domainerror.ErrCodeGoalProgressWriteFailed,
			fmt.Sprintf("%d tracker write(s) failed during schedule change", len(failed)),
			errors.Join(failed...),
		)
	}

	return output, nil
}

func equalTimes(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
