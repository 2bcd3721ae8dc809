// Package scheduler runs the periodic reminder sweep.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/engage-crm/backend/internal/application/usecase/reminder"
)

// Scheduler owns the cron runner for the reminder sweep.
type Scheduler struct {
	cron     *cron.Cron
	sweep    *reminder.SweepRemindersUseCase
	schedule string
}

// New creates a Scheduler that runs the sweep on the given cron schedule.
func New(sweep *reminder.SweepRemindersUseCase, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sweep:    sweep,
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		output, err := s.sweep.Execute(ctx, reminder.SweepRemindersInput{Now: time.Now().UTC()})
		if err != nil {
			slog.Error("Reminder sweep failed", "error", err)
			return
		}
		slog.Info("Reminder sweep completed",
			"window_start", output.WindowStart,
			"window_end", output.WindowEnd,
			"dispatched", output.Dispatched,
			"expired", output.Expired,
			"failed", output.Failed,
		)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("Reminder sweep scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Info("Reminder sweep scheduler stopped")
}
