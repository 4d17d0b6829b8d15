package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PendingReminder creates reminders for documents awaiting review.
type PendingReminder interface {
	RemindPending(ctx context.Context, olderThan time.Duration) (int, error)
}

const jobTimeout = 5 * time.Minute

type ReminderScheduler struct {
	cronEngine  *cron.Cron
	reminder    PendingReminder
	logger      *logrus.Entry
	cronSpec    string
	reminderAge time.Duration
}

func NewReminderScheduler(
	reminder PendingReminder,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 9 * * 1-5" (9:00 AM on weekdays)
	reminderAge time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:  cron.New(cron.WithLocation(time.Local)),
		reminder:    reminder,
		logger:      logger,
		cronSpec:    cronSpec,
		reminderAge: reminderAge,
	}
}

// Start registers the jobs and starts the cron engine.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runPendingReminder); err != nil {
		return fmt.Errorf("could not add pending reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Reminder scheduler started.")
	return nil
}

func (s *ReminderScheduler) runPendingReminder() {
	s.logger.Info("Cron job triggered for pending document reminders.")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := s.reminder.RemindPending(ctx, s.reminderAge)
	if err != nil {
		s.logger.WithError(err).Error("Error during pending document reminder processing")
		return
	}
	s.logger.WithField("reminders", sent).Info("Pending document reminders created.")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
