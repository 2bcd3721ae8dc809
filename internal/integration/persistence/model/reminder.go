// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// ReminderModel represents the reminders table in the database. The
// (activity_id, sys_type) pair is unique: at most one default and one user
// reminder per activity.
type ReminderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminders_activity_sys_type"`
	SysType    string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_reminders_activity_sys_type"`
	NextAt     time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	Activity *ActivityModel `gorm:"foreignKey:ActivityID"`
	User     *UserModel     `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for the ReminderModel.
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToEntity converts a ReminderModel to a domain Reminder entity.
func (m *ReminderModel) ToEntity() *entity.Reminder {
	r := &entity.Reminder{
		ID:         m.ID,
		UserID:     m.UserID,
		ActivityID: m.ActivityID,
		SysType:    entity.ReminderSysType(m.SysType),
		NextAt:     m.NextAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Activity != nil {
		r.Activity = m.Activity.ToEntity()
	}
	if m.User != nil {
		r.User = m.User.ToEntity()
	}
	return r
}

// ReminderFromEntity creates a ReminderModel from a domain Reminder entity.
func ReminderFromEntity(reminder *entity.Reminder) *ReminderModel {
	return &ReminderModel{
		ID:         reminder.ID,
		UserID:     reminder.UserID,
		ActivityID: reminder.ActivityID,
		SysType:    string(reminder.SysType),
		NextAt:     reminder.NextAt,
		CreatedAt:  reminder.CreatedAt,
		UpdatedAt:  reminder.UpdatedAt,
	}
}
