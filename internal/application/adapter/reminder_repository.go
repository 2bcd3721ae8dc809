// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder persistence operations.
type ReminderRepository interface {
	// FindByActivityID retrieves all reminders for an activity.
	FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]*entity.Reminder, error)

	// FindByActivityIDAndSysType retrieves the single reminder of the given
	// system type for an activity, or nil when none exists.
	FindByActivityIDAndSysType(ctx context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) (*entity.Reminder, error)

	// Upsert creates the reminder, or updates NextAt on the existing row for
	// the same (activity, sys type) pair.
	Upsert(ctx context.Context, reminder *entity.Reminder) error

	// DeleteByActivityID removes every reminder for an activity.
	DeleteByActivityID(ctx context.Context, activityID uuid.UUID) error

	// DeleteByActivityIDAndSysType removes the reminder of the given system
	// type for an activity, if one exists.
	DeleteByActivityIDAndSysType(ctx context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) error

	// FindDueInWindow retrieves reminders with NextAt in [start, end),
	// eagerly loading the owning activity and recipient user. Reminders
	// whose activity has been soft-deleted are skipped.
	FindDueInWindow(ctx context.Context, start, end time.Time) ([]*entity.Reminder, error)

	// DeleteByIDs batch-deletes reminders by id.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
