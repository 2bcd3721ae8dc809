// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
	"github.com/engage-crm/backend/internal/integration/persistence/model"
)

// goalTrackerRepository implements the adapter.GoalTrackerRepository interface.
type goalTrackerRepository struct {
	db *gorm.DB
}

// NewGoalTrackerRepository creates a new goal tracker repository instance.
func NewGoalTrackerRepository(db *gorm.DB) adapter.GoalTrackerRepository {
	return &goalTrackerRepository{
		db: db,
	}
}

// FindByID retrieves a goal tracker by its ID.
func (r *goalTrackerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GoalTracker, error) {
	var goalModel model.GoalTrackerModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalTrackerNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindMatching retrieves the goal trackers whose owner, activity type, and
// date range match the given activity day. Containment is inclusive of both
// endpoints at day granularity: the range columns carry datetimes, so the
// day is widened to [00:00, next day 00:00) before comparing.
func (r *goalTrackerRepository) FindMatching(ctx context.Context, ownerID, activityTypeID uuid.UUID, day time.Time) ([]*entity.GoalTracker, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	nextDay := dayStart.Add(24 * time.Hour)

	var models []model.GoalTrackerModel
	result := r.db.WithContext(ctx).
		Where("created_by = ? AND activity_type_id = ?", ownerID, activityTypeID).
		Where("started_at < ? AND ended_at >= ?", nextDay, dayStart).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.GoalTracker, len(models))
	for i, m := range models {
		goals[i] = m.ToEntity()
	}
	return goals, nil
}

// FindByOwnerAndType retrieves every goal tracker for an owner with the
// given activity type, regardless of date range.
func (r *goalTrackerRepository) FindByOwnerAndType(ctx context.Context, ownerID, activityTypeID uuid.UUID) ([]*entity.GoalTracker, error) {
	var models []model.GoalTrackerModel
	result := r.db.WithContext(ctx).
		Where("created_by = ? AND activity_type_id = ?", ownerID, activityTypeID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.GoalTracker, len(models))
	for i, m := range models {
		goals[i] = m.ToEntity()
	}
	return goals, nil
}

// UpdateProgress persists the derived progress fields in a single write,
// leaving the user-owned tracker fields untouched.
func (r *goalTrackerRepository) UpdateProgress(ctx context.Context, goal *entity.GoalTracker) error {
	ids := make(pq.StringArray, len(goal.CompletedActivityIDs))
	for i, id := range goal.CompletedActivityIDs {
		ids[i] = id.String()
	}

	result := r.db.WithContext(ctx).
		Model(&model.GoalTrackerModel{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"goal_count":             goal.GoalCount,
			"completed_activity_ids": ids,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalTrackerNotFound
	}
	return nil
}
