// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalTracker represents a user-defined aggregation target: complete N
// activities of a given type between two dates. GoalCount and
// CompletedActivityIDs are derived and kept consistent by the recompute
// engine whenever a tracked activity changes.
type GoalTracker struct {
	ID                   uuid.UUID
	CreatedBy            uuid.UUID
	ActivityTypeID       uuid.UUID
	Name                 string
	StartedAt            time.Time
	EndedAt              time.Time
	Target               int
	GoalCount            int
	CompletedActivityIDs []uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewGoalTracker creates a new GoalTracker entity with empty progress.
func NewGoalTracker(createdBy, activityTypeID uuid.UUID, name string, startedAt, endedAt time.Time, target int) *GoalTracker {
	now := time.Now().UTC()

	return &GoalTracker{
		ID:                   uuid.New(),
		CreatedBy:            createdBy,
		ActivityTypeID:       activityTypeID,
		Name:                 name,
		StartedAt:            startedAt,
		EndedAt:              endedAt,
		Target:               target,
		GoalCount:            0,
		CompletedActivityIDs: []uuid.UUID{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ContainsActivity reports whether the activity id is already counted
// toward the goal.
func (g *GoalTracker) ContainsActivity(activityID uuid.UUID) bool {
	for _, id := range g.CompletedActivityIDs {
		if id == activityID {
			return true
		}
	}
	return false
}

// AddActivity appends the activity id to the completed set and bumps the
// count. It is a no-op when the id is already present, preserving
// goal_count == len(completed_activity_ids).
func (g *GoalTracker) AddActivity(activityID uuid.UUID) bool {
	if g.ContainsActivity(activityID) {
		return false
	}
	g.CompletedActivityIDs = append(g.CompletedActivityIDs, activityID)
	g.GoalCount = len(g.CompletedActivityIDs)
	return true
}

// RemoveActivity drops the activity id from the completed set and lowers
// the count. It is a no-op when the id is absent.
func (g *GoalTracker) RemoveActivity(activityID uuid.UUID) bool {
	for i, id := range g.CompletedActivityIDs {
		if id == activityID {
			g.CompletedActivityIDs = append(g.CompletedActivityIDs[:i], g.CompletedActivityIDs[i+1:]...)
			g.GoalCount = len(g.CompletedActivityIDs)
			return true
		}
	}
	return false
}
