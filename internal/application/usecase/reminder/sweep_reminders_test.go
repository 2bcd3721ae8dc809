// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

func newSweepFixture(users ...*entity.User) (*SweepRemindersUseCase, *fakeReminderRepo, *fakeNotifier, *fakeMailer) {
	reminderRepo := newFakeReminderRepo()
	notifier := &fakeNotifier{}
	mailer := &fakeMailer{}

	uc := NewSweepRemindersUseCase(
		reminderRepo,
		newFakeUserRepo(users...),
		notifier,
		mailer,
		5*time.Minute,
	)

	return uc, reminderRepo, notifier, mailer
}

// dueReminder builds a reminder whose NextAt falls inside the sweep window
// for a given now, with its activity and recipient preloaded.
func dueReminder(now time.Time, sysType entity.ReminderSysType, user *entity.User) *entity.Reminder {
	start := now.Add(2 * time.Hour)
	activity := entity.NewActivity(user.ID, uuid.New(), "Client call", &start, nil)

	r := entity.NewReminder(user.ID, activity.ID, sysType, now.Add(2*time.Minute))
	r.Activity = activity
	r.User = user
	return r
}

func TestSweepReminders_Window(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 30, 0, time.UTC)
	user := entity.NewUser("ana@example.com", "Ana")

	uc, repo, _, _ := newSweepFixture(user)

	inWindow := dueReminder(now, entity.ReminderSysTypeUser, user)
	repo.add(inWindow)

	// Due five minutes past the window start, i.e. just outside.
	outside := dueReminder(now, entity.ReminderSysTypeUser, user)
	outside.ActivityID = uuid.New()
	outside.Activity.ID = outside.ActivityID
	outside.NextAt = now.Truncate(time.Minute).Add(5 * time.Minute)
	repo.add(outside)

	output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if !output.WindowStart.Equal(wantStart) {
		t.Errorf("expected window start %v, got %v", wantStart, output.WindowStart)
	}
	if !output.WindowEnd.Equal(wantStart.Add(5 * time.Minute)) {
		t.Errorf("expected window end %v, got %v", wantStart.Add(5*time.Minute), output.WindowEnd)
	}
	if output.Dispatched != 1 {
		t.Errorf("expected 1 dispatched reminder, got %d", output.Dispatched)
	}
}

func TestSweepReminders_Channels(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("default reminder goes out on both channels", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana")
		uc, repo, notifier, mailer := newSweepFixture(user)
		repo.add(dueReminder(now, entity.ReminderSysTypeDefault, user))

		output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Dispatched != 1 {
			t.Errorf("expected 1 dispatched reminder, got %d", output.Dispatched)
		}
		if len(notifier.sent) != 1 {
			t.Errorf("expected 1 notification, got %d", len(notifier.sent))
		}
		if len(mailer.sent) != 1 {
			t.Errorf("expected 1 email, got %d", len(mailer.sent))
		}
	})

	t.Run("user reminder honors the email channel", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana")
		uc, repo, notifier, mailer := newSweepFixture(user)

		r := dueReminder(now, entity.ReminderSysTypeUser, user)
		channel := entity.ReminderChannelEmail
		r.Activity.ReminderType = &channel
		repo.add(r)

		if _, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(mailer.sent) != 1 {
			t.Errorf("expected 1 email, got %d", len(mailer.sent))
		}
		if len(notifier.sent) != 0 {
			t.Errorf("expected no notifications, got %d", len(notifier.sent))
		}
	})

	t.Run("user reminder without a channel falls back to notification", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana")
		uc, repo, notifier, mailer := newSweepFixture(user)
		repo.add(dueReminder(now, entity.ReminderSysTypeUser, user))

		if _, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(notifier.sent) != 1 {
			t.Errorf("expected 1 notification, got %d", len(notifier.sent))
		}
		if len(mailer.sent) != 0 {
			t.Errorf("expected no emails, got %d", len(mailer.sent))
		}
	})

	t.Run("resolves the recipient when the row was loaded without its user", func(t *testing.T) {
		user := entity.NewUser("ana@example.com", "Ana")
		uc, repo, _, mailer := newSweepFixture(user)

		r := dueReminder(now, entity.ReminderSysTypeUser, user)
		channel := entity.ReminderChannelEmail
		r.Activity.ReminderType = &channel
		r.User = nil
		repo.add(r)

		output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Dispatched != 1 {
			t.Errorf("expected 1 dispatched reminder, got %d", output.Dispatched)
		}
		if len(mailer.recipients) != 1 || mailer.recipients[0] != user.ID {
			t.Errorf("expected email to %v, got %v", user.ID, mailer.recipients)
		}
	})
}

func TestSweepReminders_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := entity.NewUser("ana@example.com", "Ana")

	uc, repo, notifier, mailer := newSweepFixture(user)

	// The activity already started; the reminder only needs aging out.
	stale := dueReminder(now, entity.ReminderSysTypeDefault, user)
	started := now.Add(-time.Hour)
	stale.Activity.StartedAt = &started
	repo.add(stale)

	output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Expired != 1 {
		t.Errorf("expected 1 expired reminder, got %d", output.Expired)
	}
	if output.Dispatched != 0 {
		t.Errorf("expected no dispatches, got %d", output.Dispatched)
	}
	if len(notifier.sent) != 0 || len(mailer.sent) != 0 {
		t.Error("expected no side effects for expired reminder")
	}
	if len(repo.reminders) != 0 {
		t.Errorf("expected expired reminder to be deleted, got %d rows", len(repo.reminders))
	}
}

func TestSweepReminders_FailureIsolation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("one failing reminder does not starve the batch", func(t *testing.T) {
		ana := entity.NewUser("ana@example.com", "Ana")
		bruno := entity.NewUser("bruno@example.com", "Bruno")
		uc, repo, notifier, _ := newSweepFixture(ana, bruno)

		broken := dueReminder(now, entity.ReminderSysTypeUser, ana)
		channel := entity.ReminderChannelEmail
		broken.Activity.ReminderType = &channel
		repo.add(broken)

		healthy := dueReminder(now, entity.ReminderSysTypeUser, bruno)
		repo.add(healthy)

		// Email delivery is down across the board.
		uc.mailer.(*fakeMailer).err = errInjected

		output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Dispatched != 1 {
			t.Errorf("expected 1 dispatched reminder, got %d", output.Dispatched)
		}
		if output.Failed != 1 {
			t.Errorf("expected 1 failed reminder, got %d", output.Failed)
		}
		if len(notifier.sent) != 1 {
			t.Errorf("expected the healthy reminder to be notified, got %d", len(notifier.sent))
		}
	})

	t.Run("default reminder counts as dispatched when one channel survives", func(t *testing.T) {
		ana := entity.NewUser("ana@example.com", "Ana")
		uc, repo, notifier, _ := newSweepFixture(ana)
		repo.add(dueReminder(now, entity.ReminderSysTypeDefault, ana))

		uc.mailer.(*fakeMailer).err = errInjected

		output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Dispatched != 1 {
			t.Errorf("expected 1 dispatched reminder, got %d", output.Dispatched)
		}
		if output.Failed != 0 {
			t.Errorf("expected no failed reminders, got %d", output.Failed)
		}
		if len(notifier.sent) != 1 {
			t.Errorf("expected a notification, got %d", len(notifier.sent))
		}
	})

	t.Run("default reminder fails when both channels fail", func(t *testing.T) {
		ana := entity.NewUser("ana@example.com", "Ana")
		uc, repo, _, _ := newSweepFixture(ana)
		repo.add(dueReminder(now, entity.ReminderSysTypeDefault, ana))

		uc.mailer.(*fakeMailer).err = errInjected
		uc.notifier.(*fakeNotifier).err = errInjected

		output, err := uc.Execute(context.Background(), SweepRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Failed != 1 {
			t.Errorf("expected 1 failed reminder, got %d", output.Failed)
		}
		if output.Dispatched != 0 {
			t.Errorf("expected no dispatched reminders, got %d", output.Dispatched)
		}
	})
}
