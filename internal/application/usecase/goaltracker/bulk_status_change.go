// Package goaltracker contains the goal tracker recompute use cases.
package goaltracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// BulkStatusChangeInput represents the input for goal recomputation after a
// bulk completed/incomplete status change. The anchor goal is the tracker
// the bulk operation originated from; its own counters are recomputed by its
// CRUD path and are excluded here.
type BulkStatusChangeInput struct {
	AnchorGoalID  uuid.UUID
	CompletedIDs  []uuid.UUID
	IncompleteIDs []uuid.UUID
}

// BulkStatusChangeOutput represents the result of a bulk recomputation.
type BulkStatusChangeOutput struct {
	GoalsUpdated int
}

// BulkStatusChangeUseCase patches every tracker affected by a bulk status
// flip: now-completed activities join the trackers their schedule matches,
// now-incomplete ones leave them.
type BulkStatusChangeUseCase struct {
	activityRepo adapter.ActivityRepository
	goalRepo     adapter.GoalTrackerRepository
}

// NewBulkStatusChangeUseCase creates a new BulkStatusChangeUseCase instance.
func NewBulkStatusChangeUseCase(
	activityRepo adapter.ActivityRepository,
	goalRepo adapter.GoalTrackerRepository,
) *BulkStatusChangeUseCase {
	return &BulkStatusChangeUseCase{
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
	}
}

// Execute applies the membership deltas. The id sets must be disjoint; the
// caller validates this before enqueueing, and the guard here only protects
// against a malformed task slipping through.
func (uc *BulkStatusChangeUseCase) Execute(ctx context.Context, input BulkStatusChangeInput) (*BulkStatusChangeOutput, error) {
	completed := make(map[uuid.UUID]struct{}, len(input.CompletedIDs))
	for _, id := range input.CompletedIDs {
		completed[id] = struct{}{}
	}
	for _, id := range input.IncompleteIDs {
		if _, ok := completed[id]; ok {
			return nil, domainerror.NewGoalTrackerError(
				domainerror.ErrCodeOverlappingStatusSets,
				"activity "+id.String()+" appears in both id sets",
				domainerror.ErrOverlappingStatusSets,
			)
		}
	}

	output := &BulkStatusChangeOutput{}
	var failed []error

	add := func(goal *entity.GoalTracker, activityID uuid.UUID) bool { return goal.AddActivity(activityID) }
	remove := func(goal *entity.GoalTracker, activityID uuid.UUID) bool { return goal.RemoveActivity(activityID) }

	updated, errs := uc.applyToMatching(ctx, input.AnchorGoalID, input.CompletedIDs, add)
	output.GoalsUpdated += updated
	failed = append(failed, errs...)

	updated, errs = uc.applyToMatching(ctx, input.AnchorGoalID, input.IncompleteIDs, remove)
	output.GoalsUpdated += updated
	failed = append(failed, errs...)

	if len(failed) > 0 {
		return output, domainerror.NewGoalTrackerError(
			domainerror.ErrCodeGoalProgressWriteFailed,
			fmt.Sprintf("%d tracker write(s) failed during bulk status change", len(failed)),
			errors.Join(failed...),
		)
	}

	return output, nil
}

// applyToMatching mutates every tracker matching each activity's schedule,
// except the anchor goal. Activities that vanished or lost their schedule
// since the bulk operation are skipped.
func (uc *BulkStatusChangeUseCase) applyToMatching(
	ctx context.Context,
	anchorGoalID uuid.UUID,
	activityIDs []uuid.UUID,
	mutate func(*entity.GoalTracker, uuid.UUID) bool,
) (int, []error) {
	var updated int
	var failed []error

	for _, activityID := range activityIDs {
		activity, err := uc.activityRepo.FindByID(ctx, activityID)
		if err != nil {
			if errors.Is(err, domainerror.ErrActivityNotFound) {
				continue
			}
			failed = append(failed, fmt.Errorf("failed to find activity %s: %w", activityID, err))
			continue
		}
		if activity.StartedAt == nil {
			continue
		}

		goals, err := uc.goalRepo.FindMatching(ctx, activity.CreatedBy, activity.ActivityTypeID, *activity.StartedAt)
		if err != nil {
			failed = append(failed, fmt.Errorf("failed to find trackers for activity %s: %w", activityID, err))
			continue
		}

		for _, goal := range goals {
			if goal.ID == anchorGoalID {
				continue
			}
			if !mutate(goal, activity.ID) {
				continue
			}
			if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
				slog.Error("Failed to update tracker progress",
					"goal_id", goal.ID,
					"activity_id", activity.ID,
					"error", err,
				)
				failed = append(failed, err)
				continue
			}
			updated++
		}
	}

	return updated, failed
}
