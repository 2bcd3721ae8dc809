// Package email provides reminder email delivery via a DB-backed queue.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/domain/entity"
	domainerror "github.com/engage-crm/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueueActivityReminderEmail queues a calendar-style activity reminder email.
func (s *Service) QueueActivityReminderEmail(ctx context.Context, input adapter.QueueActivityReminderInput) error {
	subject := fmt.Sprintf("Reminder: %s at %s", input.Subject, input.StartedAt.UTC().Format("15:04 MST, Jan 2"))

	templateData := map[string]interface{}{
		"user_name":   input.UserName,
		"subject":     input.Subject,
		"activity_id": input.ActivityID.String(),
		"started_at":  input.StartedAt.UTC().Format(time.RFC3339),
	}
	if input.EndedAt != nil {
		templateData["ended_at"] = input.EndedAt.UTC().Format(time.RFC3339)
	}

	job := entity.NewEmailJob(
		entity.TemplateActivityReminder,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue activity reminder email",
			err,
		)
	}

	return nil
}

// SendActivityReminder queues a reminder email for the activity's owner.
// The sweep treats this as the dispatch; actual delivery happens in the
// worker with its own retry policy.
func (s *Service) SendActivityReminder(ctx context.Context, activity *entity.Activity, user *entity.User) error {
	if activity.StartedAt == nil {
		return domainerror.ErrActivityNotScheduled
	}
	return s.QueueActivityReminderEmail(ctx, adapter.QueueActivityReminderInput{
		ActivityID: activity.ID,
		Subject:    activity.Subject,
		StartedAt:  *activity.StartedAt,
		EndedAt:    activity.EndedAt,
		UserEmail:  user.Email,
		UserName:   user.Name,
	})
}

// Ensure Service implements both queueing and sweep-facing interfaces.
var (
	_ adapter.EmailService   = (*Service)(nil)
	_ adapter.ReminderMailer = (*Service)(nil)
)
