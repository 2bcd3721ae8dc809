// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
)

// SweepRemindersInput represents the input for a reminder sweep.
type SweepRemindersInput struct {
	Now time.Time
}

// SweepRemindersOutput represents the result of a reminder sweep.
type SweepRemindersOutput struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Dispatched  int
	Expired     int
	Failed      int
}

// SweepRemindersUseCase scans the next few minutes of due reminders and
// dispatches notification and email side effects. Reminders whose activity
// already started are aged out instead of dispatched. The sweep is
// best-effort: a reminder whose window was missed entirely is silently
// skipped and eventually expires.
type SweepRemindersUseCase struct {
	reminderRepo adapter.ReminderRepository
	userRepo     adapter.UserRepository
	notifier     adapter.NotificationDispatcher
	mailer       adapter.ReminderMailer
	window       time.Duration
}

// NewSweepRemindersUseCase creates a new SweepRemindersUseCase instance.
func NewSweepRemindersUseCase(
	reminderRepo adapter.ReminderRepository,
	userRepo adapter.UserRepository,
	notifier adapter.NotificationDispatcher,
	mailer adapter.ReminderMailer,
	window time.Duration,
) *SweepRemindersUseCase {
	return &SweepRemindersUseCase{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		mailer:       mailer,
		window:       window,
	}
}

// Execute performs one sweep over the [floor(now, minute), +window) range.
//
// Dispatch failures are isolated per reminder: the failure is logged and
// the sweep moves on, so one broken recipient never starves the rest of
// the batch.
func (uc *SweepRemindersUseCase) Execute(ctx context.Context, input SweepRemindersInput) (*SweepRemindersOutput, error) {
	windowStart := input.Now.UTC().Truncate(time.Minute)
	windowEnd := windowStart.Add(uc.window)

	reminders, err := uc.reminderRepo.FindDueInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load due reminders: %w", err)
	}

	output := &SweepRemindersOutput{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}

	var expired []uuid.UUID
	for _, r := range reminders {
		if r.Activity == nil || r.Activity.StartedAt == nil || !r.Activity.StartedAt.After(windowStart) {
			// The event already started or lost its schedule; the reminder
			// is stale and only needs aging out.
			expired = append(expired, r.ID)
			continue
		}

		if uc.dispatch(ctx, r) {
			output.Dispatched++
		} else {
			output.Failed++
		}
	}

	if len(expired) > 0 {
		if err := uc.reminderRepo.DeleteByIDs(ctx, expired); err != nil {
			return nil, fmt.Errorf("failed to delete expired reminders: %w", err)
		}
		output.Expired = len(expired)
	}

	return output, nil
}

// dispatch delivers a single reminder. A default reminder always goes out
// on both channels; a user reminder honors the channel picked on the
// activity. Returns false when every attempted channel failed.
func (uc *SweepRemindersUseCase) dispatch(ctx context.Context, r *entity.Reminder) bool {
	logger := slog.With(
		"reminder_id", r.ID,
		"activity_id", r.ActivityID,
		"sys_type", r.SysType,
	)

	sendEmail := func() bool {
		user := r.User
		if user == nil {
			// The row was loaded without its recipient; resolve from the
			// activity owner instead.
			loaded, err := uc.userRepo.FindByID(ctx, r.Activity.CreatedBy)
			if err != nil {
				logger.Warn("Skipping email reminder without recipient user", "error", err)
				return false
			}
			user = loaded
		}
		if err := uc.mailer.SendActivityReminder(ctx, r.Activity, user); err != nil {
			logger.Error("Failed to dispatch email reminder", "error", err)
			return false
		}
		return true
	}
	sendNotification := func() bool {
		if err := uc.notifier.SendActivityReminder(ctx, r.Activity); err != nil {
			logger.Error("Failed to dispatch notification reminder", "error", err)
			return false
		}
		return true
	}

	if r.SysType == entity.ReminderSysTypeDefault {
		emailOK := sendEmail()
		notifOK := sendNotification()
		return emailOK || notifOK
	}

	if r.Activity.ReminderChannelOrDefault() == entity.ReminderChannelEmail {
		return sendEmail()
	}
	return sendNotification()
}
