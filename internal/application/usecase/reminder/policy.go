// Package reminder contains the reminder lifecycle and sweep use cases.
package reminder

import (
	"time"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// Policy computes reminder fire times from an activity's schedule. It is
// pure computation: callers must only invoke it with a scheduled activity
// (non-nil StartedAt).
type Policy struct {
	// DefaultLeadTime is how far before the activity start the default
	// reminder fires.
	DefaultLeadTime time.Duration
}

// DefaultNextAt returns the fire time of the default reminder: the activity
// start minus the configured lead time.
func (p Policy) DefaultNextAt(activity *entity.Activity) time.Time {
	return activity.StartedAt.Add(-p.DefaultLeadTime)
}

// UserNextAt returns the fire time of the user-configured reminder: the
// activity start minus the configured cadence. Both ReminderTime and
// ReminderUnit must be set.
func (p Policy) UserNextAt(activity *entity.Activity) time.Time {
	return activity.StartedAt.Add(-userDelta(*activity.ReminderTime, *activity.ReminderUnit))
}

// userDelta converts a reminder magnitude and unit into a duration. Weeks
// have no duration type of their own and are treated as seven days.
func userDelta(magnitude int, unit entity.ReminderUnit) time.Duration {
	switch unit {
	case entity.ReminderUnitMinutes:
		return time.Duration(magnitude) * time.Minute
	case entity.ReminderUnitHours:
		return time.Duration(magnitude) * time.Hour
	case entity.ReminderUnitDays:
		return time.Duration(magnitude) * 24 * time.Hour
	case entity.ReminderUnitWeeks:
		return time.Duration(magnitude) * 7 * 24 * time.Hour
	}
	return 0
}
