// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
	"github.com/engage-crm/backend/internal/integration/persistence/model"
)

// reminderRepository implements the adapter.ReminderRepository interface.
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository instance.
func NewReminderRepository(db *gorm.DB) adapter.ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

// FindByActivityID retrieves all reminders for an activity.
func (r *reminderRepository) FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]*entity.Reminder, error) {
	var models []model.ReminderModel
	result := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("sys_type ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	reminders := make([]*entity.Reminder, len(models))
	for i, m := range models {
		reminders[i] = m.ToEntity()
	}
	return reminders, nil
}

// FindByActivityIDAndSysType retrieves the single reminder of the given
// system type for an activity. Returns nil without error when none exists.
func (r *reminderRepository) FindByActivityIDAndSysType(ctx context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) (*entity.Reminder, error) {
	var reminderModel model.ReminderModel
	result := r.db.WithContext(ctx).
		Where("activity_id = ? AND sys_type = ?", activityID, string(sysType)).
		First(&reminderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return reminderModel.ToEntity(), nil
}

// Upsert creates the reminder or, when a row for the same (activity, sys
// type) pair already exists, updates its fire time in place.
func (r *reminderRepository) Upsert(ctx context.Context, reminder *entity.Reminder) error {
	reminderModel := model.ReminderFromEntity(reminder)
	reminderModel.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "activity_id"}, {Name: "sys_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"next_at", "user_id", "updated_at"}),
		}).
		Create(reminderModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteByActivityID removes every reminder for an activity.
func (r *reminderRepository) DeleteByActivityID(ctx context.Context, activityID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Delete(&model.ReminderModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteByActivityIDAndSysType removes the reminder of the given system
// type for an activity, if one exists.
func (r *reminderRepository) DeleteByActivityIDAndSysType(ctx context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) error {
	result := r.db.WithContext(ctx).
		Where("activity_id = ? AND sys_type = ?", activityID, string(sysType)).
		Delete(&model.ReminderModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindDueInWindow retrieves reminders with next_at in [start, end), eagerly
// loading the owning activity and the recipient. The inner join on
// activities drops reminders whose activity was soft-deleted.
func (r *reminderRepository) FindDueInWindow(ctx context.Context, start, end time.Time) ([]*entity.Reminder, error) {
	var models []model.ReminderModel
	result := r.db.WithContext(ctx).
		Joins("JOIN activities ON activities.id = reminders.activity_id AND activities.deleted_at IS NULL").
		Preload("Activity").
		Preload("User").
		Where("reminders.next_at >= ? AND reminders.next_at < ?", start, end).
		Order("reminders.next_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	reminders := make([]*entity.Reminder, len(models))
	for i, m := range models {
		reminders[i] = m.ToEntity()
	}
	return reminders, nil
}

// DeleteByIDs batch-deletes reminders by id.
func (r *reminderRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.ReminderModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
