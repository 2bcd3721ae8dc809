// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// fakeActivityRepo serves activities from a map.
type fakeActivityRepo struct {
	activities map[uuid.UUID]*entity.Activity
}

func newFakeActivityRepo(activities ...*entity.Activity) *fakeActivityRepo {
	repo := &fakeActivityRepo{activities: make(map[uuid.UUID]*entity.Activity)}
	for _, a := range activities {
		repo.activities[a.ID] = a
	}
	return repo
}

func (f *fakeActivityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, domainerror.ErrActivityNotFound
	}
	return a, nil
}

// fakeReminderRepo keeps reminders keyed by (activity, sys type) and can
// inject write failures.
type fakeReminderRepo struct {
	reminders map[string]*entity.Reminder

	upsertErr error
	deleteErr error
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]*entity.Reminder)}
}

func reminderKey(activityID uuid.UUID, sysType entity.ReminderSysType) string {
	return activityID.String() + "/" + string(sysType)
}

func (f *fakeReminderRepo) add(r *entity.Reminder) {
	f.reminders[reminderKey(r.ActivityID, r.SysType)] = r
}

func (f *fakeReminderRepo) FindByActivityID(_ context.Context, activityID uuid.UUID) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.ActivityID == activityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) FindByActivityIDAndSysType(_ context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) (*entity.Reminder, error) {
	return f.reminders[reminderKey(activityID, sysType)], nil
}

func (f *fakeReminderRepo) Upsert(_ context.Context, reminder *entity.Reminder) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := reminderKey(reminder.ActivityID, reminder.SysType)
	if existing, ok := f.reminders[key]; ok {
		existing.NextAt = reminder.NextAt
		existing.UserID = reminder.UserID
		return nil
	}
	f.reminders[key] = reminder
	return nil
}

func (f *fakeReminderRepo) DeleteByActivityID(_ context.Context, activityID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for key, r := range f.reminders {
		if r.ActivityID == activityID {
			delete(f.reminders, key)
		}
	}
	return nil
}

func (f *fakeReminderRepo) DeleteByActivityIDAndSysType(_ context.Context, activityID uuid.UUID, sysType entity.ReminderSysType) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.reminders, reminderKey(activityID, sysType))
	return nil
}

func (f *fakeReminderRepo) FindDueInWindow(_ context.Context, start, end time.Time) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if !r.NextAt.Before(start) && r.NextAt.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, id := range ids {
		for key, r := range f.reminders {
			if r.ID == id {
				delete(f.reminders, key)
			}
		}
	}
	return nil
}

// fakeUserRepo serves users from a map.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

// fakeNotifier records notification dispatches per activity.
type fakeNotifier struct {
	sent []uuid.UUID
	err  error
}

func (f *fakeNotifier) SendActivityReminder(_ context.Context, activity *entity.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, activity.ID)
	return nil
}

// fakeMailer records email dispatches per activity.
type fakeMailer struct {
	sent       []uuid.UUID
	recipients []uuid.UUID
	err        error
}

func (f *fakeMailer) SendActivityReminder(_ context.Context, activity *entity.Activity, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, activity.ID)
	f.recipients = append(f.recipients, user.ID)
	return nil
}

var errInjected = errors.New("injected failure")
