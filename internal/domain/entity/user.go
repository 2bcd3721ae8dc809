// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account member in the Engage CRM system. This worker
// only reads users as reminder recipients; account administration lives in
// the main API.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	Timezone           string
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		Timezone:           "UTC",
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
