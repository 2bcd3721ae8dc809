// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// GoalTrackerModel represents the goal_trackers table in the database.
type GoalTrackerModel struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedBy            uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActivityTypeID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name                 string         `gorm:"type:varchar(255);not null"`
	StartedAt            time.Time      `gorm:"not null"`
	EndedAt              time.Time      `gorm:"not null"`
	Target               int            `gorm:"not null"`
	GoalCount            int            `gorm:"not null;default:0"`
	CompletedActivityIDs pq.StringArray `gorm:"type:uuid[]"`
	CreatedAt            time.Time      `gorm:"not null"`
	UpdatedAt            time.Time      `gorm:"not null"`
	DeletedAt            gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalTrackerModel.
func (GoalTrackerModel) TableName() string {
	return "goal_trackers"
}

// ToEntity converts a GoalTrackerModel to a domain GoalTracker entity.
// Array elements that fail uuid parsing are dropped rather than failing the
// whole read.
func (m *GoalTrackerModel) ToEntity() *entity.GoalTracker {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	ids := make([]uuid.UUID, 0, len(m.CompletedActivityIDs))
	for _, raw := range m.CompletedActivityIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	return &entity.GoalTracker{
		ID:                   m.ID,
		CreatedBy:            m.CreatedBy,
		ActivityTypeID:       m.ActivityTypeID,
		Name:                 m.Name,
		StartedAt:            m.StartedAt,
		EndedAt:              m.EndedAt,
		Target:               m.Target,
		GoalCount:            m.GoalCount,
		CompletedActivityIDs: ids,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// GoalTrackerFromEntity creates a GoalTrackerModel from a domain GoalTracker entity.
func GoalTrackerFromEntity(goal *entity.GoalTracker) *GoalTrackerModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	ids := make(pq.StringArray, len(goal.CompletedActivityIDs))
	for i, id := range goal.CompletedActivityIDs {
		ids[i] = id.String()
	}

	return &GoalTrackerModel{
		ID:                   goal.ID,
		CreatedBy:            goal.CreatedBy,
		ActivityTypeID:       goal.ActivityTypeID,
		Name:                 goal.Name,
		StartedAt:            goal.StartedAt,
		EndedAt:              goal.EndedAt,
		Target:               goal.Target,
		GoalCount:            goal.GoalCount,
		CompletedActivityIDs: ids,
		CreatedAt:            goal.CreatedAt,
		UpdatedAt:            goal.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
