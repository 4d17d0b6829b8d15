package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"accounting_docs_service/internal/infra/logger"
)

type fakeReminder struct {
	calls []time.Duration
	err   error
}

func (f *fakeReminder) RemindPending(ctx context.Context, olderThan time.Duration) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context has no deadline")
	}
	f.calls = append(f.calls, olderThan)
	return len(f.calls), f.err
}

func TestRunPendingReminder(t *testing.T) {
	t.Parallel()

	r := &fakeReminder{}
	s := NewReminderScheduler(r, logger.Discard(), "0 9 * * 1-5", 36*time.Hour)

	s.runPendingReminder()
	r.err = errors.New("db down")
	s.runPendingReminder()

	if len(r.calls) != 2 {
		t.Fatalf("RemindPending called %d times, want 2", len(r.calls))
	}
	if r.calls[0] != 36*time.Hour {
		t.Errorf("olderThan = %v, want 36h", r.calls[0])
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	t.Parallel()

	s := NewReminderScheduler(&fakeReminder{}, logger.Discard(), "every tuesday", time.Hour)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("Start() with invalid spec returned nil")
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s := NewReminderScheduler(&fakeReminder{}, logger.Discard(), "@every 1h", time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	s.Stop()
}
