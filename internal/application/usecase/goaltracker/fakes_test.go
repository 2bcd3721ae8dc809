// Package goaltracker contains the goal tracker recompute use cases.
package goaltracker

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

// fakeGoalRepo keeps trackers in memory and mirrors the day-granularity
// matching semantics of the real repository.
type fakeGoalRepo struct {
	goals map[uuid.UUID]*entity.GoalTracker

	updateErrFor map[uuid.UUID]error
	updates      int
}

func newFakeGoalRepo(goals ...*entity.GoalTracker) *fakeGoalRepo {
	repo := &fakeGoalRepo{
		goals:        make(map[uuid.UUID]*entity.GoalTracker),
		updateErrFor: make(map[uuid.UUID]error),
	}
	for _, g := range goals {
		repo.goals[g.ID] = g
	}
	return repo
}

func (f *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.GoalTracker, error) {
	g, ok := f.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalTrackerNotFound
	}
	return g, nil
}

func (f *fakeGoalRepo) FindMatching(_ context.Context, ownerID, activityTypeID uuid.UUID, day time.Time) ([]*entity.GoalTracker, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	nextDay := dayStart.Add(24 * time.Hour)

	var out []*entity.GoalTracker
	for _, g := range f.goals {
		if g.CreatedBy != ownerID || g.ActivityTypeID != activityTypeID {
			continue
		}
		if g.StartedAt.Before(nextDay) && !g.EndedAt.Before(dayStart) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) FindByOwnerAndType(_ context.Context, ownerID, activityTypeID uuid.UUID) ([]*entity.GoalTracker, error) {
	var out []*entity.GoalTracker
	for _, g := range f.goals {
		if g.CreatedBy == ownerID && g.ActivityTypeID == activityTypeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) UpdateProgress(_ context.Context, goal *entity.GoalTracker) error {
	if err := f.updateErrFor[goal.ID]; err != nil {
		return err
	}
	if _, ok := f.goals[goal.ID]; !ok {
		return domainerror.ErrGoalTrackerNotFound
	}
	f.goals[goal.ID] = goal
	f.updates++
	return nil
}

var errInjected = errors.New("injected failure")
