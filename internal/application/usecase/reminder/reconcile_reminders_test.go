// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

func newReconcileFixture(activities ...*entity.Activity) (*ReconcileRemindersUseCase, *fakeReminderRepo) {
	activityRepo := newFakeActivityRepo(activities...)
	reminderRepo := newFakeReminderRepo()

	uc := NewReconcileRemindersUseCase(
		activityRepo,
		reminderRepo,
		Policy{DefaultLeadTime: 30 * time.Minute},
		time.Minute,
	)
	uc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	return uc, reminderRepo
}

func scheduledActivity(start time.Time) *entity.Activity {
	return entity.NewActivity(uuid.New(), uuid.New(), "Investor meeting", &start, nil)
}

func withCustomReminder(a *entity.Activity, magnitude int, unit entity.ReminderUnit) *entity.Activity {
	a.ReminderTime = &magnitude
	a.ReminderUnit = &unit
	return a
}

func TestReconcileReminders_DefaultReminder(t *testing.T) {
	t.Run("creates default reminder for activity far enough out", func(t *testing.T) {
		activity := scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
		if output.DefaultNextAt == nil || !output.DefaultNextAt.Equal(want) {
			t.Errorf("expected default reminder at %v, got %v", want, output.DefaultNextAt)
		}
		if output.UserNextAt != nil {
			t.Errorf("expected no user reminder, got %v", output.UserNextAt)
		}

		stored := repo.reminders[reminderKey(activity.ID, entity.ReminderSysTypeDefault)]
		if stored == nil {
			t.Fatal("expected a default reminder row")
		}
		if !stored.NextAt.Equal(want) {
			t.Errorf("expected stored NextAt %v, got %v", want, stored.NextAt)
		}
		if stored.UserID != activity.CreatedBy {
			t.Errorf("expected reminder owned by %v, got %v", activity.CreatedBy, stored.UserID)
		}
	})

	t.Run("skips default reminder when activity starts too soon", func(t *testing.T) {
		// 20 minutes out is inside the 30m lead + 1m margin.
		activity := scheduledActivity(time.Date(2026, 3, 10, 12, 20, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil {
			t.Errorf("expected no default reminder, got %v", output.DefaultNextAt)
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected no reminder rows, got %d", len(repo.reminders))
		}
	})

	t.Run("skips default reminder exactly at the lead plus margin boundary", func(t *testing.T) {
		// Exactly 31 minutes out: the comparison is strict.
		activity := scheduledActivity(time.Date(2026, 3, 10, 12, 31, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil {
			t.Errorf("expected no default reminder, got %v", output.DefaultNextAt)
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected no reminder rows, got %d", len(repo.reminders))
		}
	})

	t.Run("moves default reminder when the activity is rescheduled", func(t *testing.T) {
		activity := scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)

		if _, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rescheduled := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
		activity.StartedAt = &rescheduled

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 3, 11, 8, 30, 0, 0, time.UTC)
		if output.DefaultNextAt == nil || !output.DefaultNextAt.Equal(want) {
			t.Errorf("expected default reminder at %v, got %v", want, output.DefaultNextAt)
		}
		if len(repo.reminders) != 1 {
			t.Errorf("expected a single reminder row, got %d", len(repo.reminders))
		}
	})

	t.Run("removes default reminder when the activity moves inside the lead window", func(t *testing.T) {
		activity := scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)

		if _, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		soon := time.Date(2026, 3, 10, 12, 10, 0, 0, time.UTC)
		activity.StartedAt = &soon

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil {
			t.Errorf("expected no default reminder, got %v", output.DefaultNextAt)
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected no reminder rows, got %d", len(repo.reminders))
		}
	})
}

func TestReconcileReminders_UserReminder(t *testing.T) {
	t.Run("qualifying user reminder supersedes the default", func(t *testing.T) {
		activity := withCustomReminder(
			scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)),
			2, entity.ReminderUnitHours,
		)
		uc, repo := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
		if output.UserNextAt == nil || !output.UserNextAt.Equal(want) {
			t.Errorf("expected user reminder at %v, got %v", want, output.UserNextAt)
		}
		if output.DefaultNextAt != nil {
			t.Errorf("expected superseded default reminder, got %v", output.DefaultNextAt)
		}

		if repo.reminders[reminderKey(activity.ID, entity.ReminderSysTypeDefault)] != nil {
			t.Error("expected default reminder row to be removed")
		}
		stored := repo.reminders[reminderKey(activity.ID, entity.ReminderSysTypeUser)]
		if stored == nil {
			t.Fatal("expected a user reminder row")
		}
		if !stored.NextAt.Equal(want) {
			t.Errorf("expected stored NextAt %v, got %v", want, stored.NextAt)
		}
	})

	t.Run("week cadence counts as seven days", func(t *testing.T) {
		activity := withCustomReminder(
			scheduledActivity(time.Date(2026, 3, 24, 9, 0, 0, 0, time.UTC)),
			1, entity.ReminderUnitWeeks,
		)
		uc, _ := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
		if output.UserNextAt == nil || !output.UserNextAt.Equal(want) {
			t.Errorf("expected user reminder at %v, got %v", want, output.UserNextAt)
		}
	})

	t.Run("degenerate cadence suppresses both reminders", func(t *testing.T) {
		// A zero cadence lands exactly on the start, which does not qualify,
		// and the resolution removes the default reminder along with it.
		activity := withCustomReminder(
			scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)),
			0, entity.ReminderUnitMinutes,
		)
		uc, repo := newReconcileFixture(activity)

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil || output.UserNextAt != nil {
			t.Errorf("expected no reminders, got default=%v user=%v", output.DefaultNextAt, output.UserNextAt)
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected no reminder rows, got %d", len(repo.reminders))
		}
	})

	t.Run("removing the custom cadence restores the default reminder", func(t *testing.T) {
		activity := withCustomReminder(
			scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)),
			2, entity.ReminderUnitHours,
		)
		uc, repo := newReconcileFixture(activity)

		if _, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		activity.ReminderTime = nil
		activity.ReminderUnit = nil

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
		if output.DefaultNextAt == nil || !output.DefaultNextAt.Equal(want) {
			t.Errorf("expected default reminder at %v, got %v", want, output.DefaultNextAt)
		}
		if repo.reminders[reminderKey(activity.ID, entity.ReminderSysTypeUser)] != nil {
			t.Error("expected user reminder row to be removed")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		activity := withCustomReminder(
			scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)),
			2, entity.ReminderUnitHours,
		)
		uc, repo := newReconcileFixture(activity)

		first, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !first.UserNextAt.Equal(*second.UserNextAt) {
			t.Errorf("expected identical outputs, got %v then %v", first.UserNextAt, second.UserNextAt)
		}
		if len(repo.reminders) != 1 {
			t.Errorf("expected a single reminder row after re-run, got %d", len(repo.reminders))
		}
	})
}

func TestReconcileReminders_EdgeCases(t *testing.T) {
	t.Run("missing activity drops its reminders and succeeds", func(t *testing.T) {
		uc, repo := newReconcileFixture()
		activityID := uuid.New()
		repo.add(entity.NewReminder(uuid.New(), activityID, entity.ReminderSysTypeDefault, time.Now()))

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil || output.UserNextAt != nil {
			t.Error("expected empty output for missing activity")
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected orphaned reminders to be removed, got %d rows", len(repo.reminders))
		}
	})

	t.Run("unscheduled activity drops its reminders", func(t *testing.T) {
		activity := entity.NewActivity(uuid.New(), uuid.New(), "Unscheduled call", nil, nil)
		uc, repo := newReconcileFixture(activity)
		repo.add(entity.NewReminder(activity.CreatedBy, activity.ID, entity.ReminderSysTypeDefault, time.Now()))

		output, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.DefaultNextAt != nil || output.UserNextAt != nil {
			t.Error("expected empty output for unscheduled activity")
		}
		if len(repo.reminders) != 0 {
			t.Errorf("expected reminders to be removed, got %d rows", len(repo.reminders))
		}
	})

	t.Run("write failure surfaces as a coded reminder error", func(t *testing.T) {
		activity := scheduledActivity(time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC))
		uc, repo := newReconcileFixture(activity)
		repo.upsertErr = errInjected

		_, err := uc.Execute(context.Background(), ReconcileRemindersInput{ActivityID: activity.ID})
		if err == nil {
			t.Fatal("expected an error")
		}

		var reminderErr *domainerror.ReminderError
		if !errors.As(err, &reminderErr) {
			t.Fatalf("expected a ReminderError, got %T", err)
		}
		if reminderErr.Code != domainerror.ErrCodeReminderWriteFailed {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeReminderWriteFailed, reminderErr.Code)
		}
	})
}
