// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// ActivityModel represents the activities table in the database. The table
// is owned by the main API's CRUD path; this worker reads it and never
// writes activity rows.
type ActivityModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActivityTypeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	StartedAt      *time.Time `gorm:"index"`
	EndedAt        *time.Time
	Status         *string `gorm:"type:varchar(20)"`
	ReminderTime   *int
	ReminderUnit   *string        `gorm:"type:varchar(10)"`
	ReminderType   *string        `gorm:"type:varchar(15)"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ActivityModel.
func (ActivityModel) TableName() string {
	return "activities"
}

// ToEntity converts an ActivityModel to a domain Activity entity.
func (m *ActivityModel) ToEntity() *entity.Activity {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var status *entity.ActivityStatus
	if m.Status != nil {
		s := entity.ActivityStatus(*m.Status)
		status = &s
	}
	var unit *entity.ReminderUnit
	if m.ReminderUnit != nil {
		u := entity.ReminderUnit(*m.ReminderUnit)
		unit = &u
	}
	var channel *entity.ReminderChannel
	if m.ReminderType != nil {
		c := entity.ReminderChannel(*m.ReminderType)
		channel = &c
	}

	return &entity.Activity{
		ID:             m.ID,
		CreatedBy:      m.CreatedBy,
		ActivityTypeID: m.ActivityTypeID,
		Subject:        m.Subject,
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
		Status:         status,
		ReminderTime:   m.ReminderTime,
		ReminderUnit:   unit,
		ReminderType:   channel,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// ActivityFromEntity creates an ActivityModel from a domain Activity entity.
func ActivityFromEntity(activity *entity.Activity) *ActivityModel {
	var deletedAt gorm.DeletedAt
	if activity.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *activity.DeletedAt, Valid: true}
	}

	var status *string
	if activity.Status != nil {
		s := string(*activity.Status)
		status = &s
	}
	var unit *string
	if activity.ReminderUnit != nil {
		u := string(*activity.ReminderUnit)
		unit = &u
	}
	var channel *string
	if activity.ReminderType != nil {
		c := string(*activity.ReminderType)
		channel = &c
	}

	return &ActivityModel{
		ID:             activity.ID,
		CreatedBy:      activity.CreatedBy,
		ActivityTypeID: activity.ActivityTypeID,
		Subject:        activity.Subject,
		StartedAt:      activity.StartedAt,
		EndedAt:        activity.EndedAt,
		Status:         status,
		ReminderTime:   activity.ReminderTime,
		ReminderUnit:   unit,
		ReminderType:   channel,
		CreatedAt:      activity.CreatedAt,
		UpdatedAt:      activity.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}
