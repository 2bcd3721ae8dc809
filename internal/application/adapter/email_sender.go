// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailAttachment represents a file attached to an outgoing email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To          string
	Name        string
	Subject     string
	HTML        string
	Text        string
	Attachments []EmailAttachment
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueueActivityReminderInput represents the input for queueing an activity
// reminder email.
type QueueActivityReminderInput struct {
	ActivityID uuid.UUID
	Subject    string
	StartedAt  time.Time
	EndedAt    *time.Time
	UserEmail  string
	UserName   string
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueActivityReminderEmail queues a calendar-style activity reminder email.
	QueueActivityReminderEmail(ctx context.Context, input QueueActivityReminderInput) error
}
