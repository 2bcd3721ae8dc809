// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// ReconcileRemindersInput represents the input for reminder reconciliation.
type ReconcileRemindersInput struct {
	ActivityID uuid.UUID
}

// ReconcileRemindersOutput summarizes the reminder rows left standing for
// the activity after reconciliation.
type ReconcileRemindersOutput struct {
	DefaultNextAt *time.Time
	UserNextAt    *time.Time
}

// ReconcileRemindersUseCase owns the reminder rows of an activity. It is
// invoked after every activity create or update and rebuilds the rows to
// match the activity's current schedule and reminder settings: at most one
// default reminder and at most one user reminder, with the user reminder
// superseding the default whenever it qualifies.
type ReconcileRemindersUseCase struct {
	activityRepo adapter.ActivityRepository
	reminderRepo adapter.ReminderRepository
	policy       Policy
	safetyMargin time.Duration
	now          func() time.Time
}

// NewReconcileRemindersUseCase creates a new ReconcileRemindersUseCase instance.
func NewReconcileRemindersUseCase(
	activityRepo adapter.ActivityRepository,
	reminderRepo adapter.ReminderRepository,
	policy Policy,
	safetyMargin time.Duration,
) *ReconcileRemindersUseCase {
	return &ReconcileRemindersUseCase{
		activityRepo: activityRepo,
		reminderRepo: reminderRepo,
		policy:       policy,
		safetyMargin: safetyMargin,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Execute reconciles the reminder rows for the activity.
//
// Reminder writes are committed individually, not batched: a failure partway
// leaves a superset of reminders removed rather than extra reminders
// created, favoring under-reminding over over-reminding on partial failure.
func (uc *ReconcileRemindersUseCase) Execute(ctx context.Context, input ReconcileRemindersInput) (*ReconcileRemindersOutput, error) {
	activity, err := uc.activityRepo.FindByID(ctx, input.ActivityID)
	if err != nil {
		if errors.Is(err, domainerror.ErrActivityNotFound) {
			// The activity is gone by the time this deferred task runs.
			// Drop whatever reminders it left behind and report success.
			if err := uc.reminderRepo.DeleteByActivityID(ctx, input.ActivityID); err != nil {
				return nil, fmt.Errorf("failed to delete reminders of missing activity: %w", err)
			}
			return &ReconcileRemindersOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	// An unscheduled activity cannot carry reminders.
	if activity.StartedAt == nil {
		if err := uc.reminderRepo.DeleteByActivityID(ctx, activity.ID); err != nil {
			return nil, fmt.Errorf("failed to delete reminders of unscheduled activity: %w", err)
		}
		return &ReconcileRemindersOutput{}, nil
	}

	output := &ReconcileRemindersOutput{}

	// Step 1: the default reminder exists only while the activity starts
	// far enough out for the default lead time, plus a safety margin so a
	// reminder is never created already due.
	now := uc.now()
	wantDefault := activity.StartedAt.Sub(now) > uc.policy.DefaultLeadTime+uc.safetyMargin
	removeDefault := false

	existingDefault, err := uc.reminderRepo.FindByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to load default reminder: %w", err)
	}

	switch {
	case wantDefault && existingDefault == nil:
		nextAt := uc.policy.DefaultNextAt(activity)
		r := entity.NewReminder(activity.CreatedBy, activity.ID, entity.ReminderSysTypeDefault, nextAt)
		if err := uc.reminderRepo.Upsert(ctx, r); err != nil {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeReminderWriteFailed,
				"failed to create default reminder",
				err,
			)
		}
		output.DefaultNextAt = &nextAt
	case wantDefault && existingDefault != nil:
		nextAt := uc.policy.DefaultNextAt(activity)
		if !existingDefault.NextAt.Equal(nextAt) {
			existingDefault.NextAt = nextAt
			if err := uc.reminderRepo.Upsert(ctx, existingDefault); err != nil {
				return nil, domainerror.NewReminderError(
					domainerror.ErrCodeReminderWriteFailed,
					"failed to update default reminder",
					err,
				)
			}
		}
		output.DefaultNextAt = &nextAt
	case !wantDefault && existingDefault != nil:
		// Deferred: the custom-reminder resolution below may delete the
		// default itself, so the final decision happens in the last step.
		removeDefault = true
	}

	// Step 2: the user reminder exists only if the activity configures a
	// cadence that actually lands before the event.
	defaultRemoved := false
	if activity.HasCustomReminder() {
		nextAt := uc.policy.UserNextAt(activity)
		if nextAt.Before(*activity.StartedAt) {
			r := entity.NewReminder(activity.CreatedBy, activity.ID, entity.ReminderSysTypeUser, nextAt)
			if err := uc.reminderRepo.Upsert(ctx, r); err != nil {
				return nil, domainerror.NewReminderError(
					domainerror.ErrCodeReminderWriteFailed,
					"failed to upsert user reminder",
					err,
				)
			}
			output.UserNextAt = &nextAt
			// A qualifying user reminder fully supersedes the default.
			if err := uc.reminderRepo.DeleteByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeDefault); err != nil {
				return nil, domainerror.NewReminderError(
					domainerror.ErrCodeReminderDeleteFailed,
					"failed to remove superseded default reminder",
					err,
				)
			}
			output.DefaultNextAt = nil
			defaultRemoved = true
		} else {
			// The configured cadence does not land before the event. The
			// degenerate setting removes the user reminder and, matching
			// long-standing production behavior, the default one with it.
			if err := uc.reminderRepo.DeleteByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeUser); err != nil {
				return nil, domainerror.NewReminderError(
					domainerror.ErrCodeReminderDeleteFailed,
					"failed to remove non-qualifying user reminder",
					err,
				)
			}
			if err := uc.reminderRepo.DeleteByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeDefault); err != nil {
				return nil, domainerror.NewReminderError(
					domainerror.ErrCodeReminderDeleteFailed,
					"failed to remove default reminder",
					err,
				)
			}
			output.DefaultNextAt = nil
			defaultRemoved = true
		}
	} else {
		if err := uc.reminderRepo.DeleteByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeUser); err != nil {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeReminderDeleteFailed,
				"failed to remove stale user reminder",
				err,
			)
		}
	}

	// Step 3: apply the deferred default removal unless the custom
	// resolution already took care of it.
	if removeDefault && !defaultRemoved {
		if err := uc.reminderRepo.DeleteByActivityIDAndSysType(ctx, activity.ID, entity.ReminderSysTypeDefault); err != nil {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeReminderDeleteFailed,
				"failed to remove default reminder",
				err,
			)
		}
		output.DefaultNextAt = nil
	}

	return output, nil
}
