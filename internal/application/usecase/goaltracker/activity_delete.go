// Package goaltracker contains the goal tracker recompute use cases.
package goaltracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/application/adapter"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// ActivityDeleteInput represents the input for goal cleanup after an
// activity was soft-deleted. The activity row itself may already be
// invisible, so its owner and type travel with the task.
type ActivityDeleteInput struct {
	ActivityID     uuid.UUID
	ActivityTypeID uuid.UUID
	OwnerID        uuid.UUID
}

// ActivityDeleteOutput represents the result of the cleanup.
type ActivityDeleteOutput struct {
	RemovedFrom int
}

// ActivityDeleteUseCase releases a deleted activity from every tracker that
// counted it.
type ActivityDeleteUseCase struct {
	goalRepo adapter.GoalTrackerRepository
}

// NewActivityDeleteUseCase creates a new ActivityDeleteUseCase instance.
func NewActivityDeleteUseCase(goalRepo adapter.GoalTrackerRepository) *ActivityDeleteUseCase {
	return &ActivityDeleteUseCase{
		goalRepo: goalRepo,
	}
}

// Execute drops the activity id from the completed set of every tracker the
// owner has for the activity's type. Each touched tracker is persisted in a
// single progress write.
func (uc *ActivityDeleteUseCase) Execute(ctx context.Context, input ActivityDeleteInput) (*ActivityDeleteOutput, error) {
	goals, err := uc.goalRepo.FindByOwnerAndType(ctx, input.OwnerID, input.ActivityTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trackers: %w", err)
	}

	output := &ActivityDeleteOutput{}
	var failed []error

	for _, goal := range goals {
		if !goal.RemoveActivity(input.ActivityID) {
			continue
		}
		if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
			slog.Error("Failed to release deleted activity from tracker",
				"goal_id", goal.ID,
				"activity_id", input.ActivityID,
				"error", err,
			)
			failed = append(failed, err)
			continue
		}
		output.RemovedFrom++
	}

	if len(failed) > 0 {
		return output, domainerror.NewGoalTrackerError(
			domainerror.ErrCodeGoalProgressWriteFailed,
			fmt.Sprintf("%d tracker write(s) failed during activity delete", len(failed)),
			errors.Join(failed...),
		)
	}

	return output, nil
}
