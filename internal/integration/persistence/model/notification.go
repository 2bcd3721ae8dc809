// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/engage-crm/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type       string     `gorm:"type:varchar(50);not null"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Message    string     `gorm:"type:text;not null"`
	ActivityID *uuid.UUID `gorm:"type:uuid;index"`
	Read       bool       `gorm:"not null;default:false"`
	CreatedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	return &entity.Notification{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       entity.NotificationType(m.Type),
		Title:      m.Title,
		Message:    m.Message,
		ActivityID: m.ActivityID,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	return &NotificationModel{
		ID:         n.ID,
		UserID:     n.UserID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		ActivityID: n.ActivityID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}
