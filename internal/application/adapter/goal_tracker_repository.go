// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// GoalTrackerRepository defines the interface for goal tracker persistence operations.
type GoalTrackerRepository interface {
	// FindByID retrieves a goal tracker by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GoalTracker, error)

	// FindMatching retrieves the goal trackers an activity day falls into:
	// same owner, same activity type, and day within the tracker's date
	// range, inclusive of both endpoints at day granularity.
	FindMatching(ctx context.Context, ownerID, activityTypeID uuid.UUID, day time.Time) ([]*entity.GoalTracker, error)

	// FindByOwnerAndType retrieves every goal tracker for an owner with the
	// given activity type, regardless of date range.
	FindByOwnerAndType(ctx context.Context, ownerID, activityTypeID uuid.UUID) ([]*entity.GoalTracker, error)

	// UpdateProgress persists the derived progress fields of a goal tracker
	// in a single write, leaving the user-owned fields untouched.
	UpdateProgress(ctx context.Context, goal *entity.GoalTracker) error
}
