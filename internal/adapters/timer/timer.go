package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"schedulebot/internal/domain"
)

// deliveryTimeout bounds a single reminder delivery attempt.
const deliveryTimeout = 30 * time.Second

// oneShot is a cron.Schedule that fires exactly once, at an absolute instant.
// After the instant has passed, Next returns the zero time and the runner
// never activates the entry again.
type oneShot struct {
	at time.Time
}

func (s oneShot) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// CronTimer registers one-shot reminder deliveries on a cron runner. Fires
// run on the runner's goroutines, concurrently with everything else; a fired
// job holds no locks beyond its own delivery. Registrations cannot be
// withdrawn: the returned handle is for log correlation only.
type CronTimer struct {
	cron     *cron.Cron
	notifier domain.Notifier
	logger   *slog.Logger
}

// NewCronTimer returns a stopped CronTimer delivering through notifier.
// Call Start before scheduling.
func NewCronTimer(notifier domain.Notifier, logger *slog.Logger) *CronTimer {
	return &CronTimer{
		cron:     cron.New(),
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins firing registered reminders.
func (t *CronTimer) Start() {
	t.cron.Start()
}

// Stop stops firing. The returned context is done when running deliveries finish.
func (t *CronTimer) Stop() context.Context {
	return t.cron.Stop()
}

// Schedule registers r to be delivered at the given instant, which must be in
// the future.
func (t *CronTimer) Schedule(at time.Time, r domain.Reminder) (domain.TimerHandle, error) {
	if !at.After(time.Now()) {
		return uuid.Nil, fmt.Errorf("fire time %s is not in the future", at)
	}
	handle := uuid.New()
	t.cron.Schedule(oneShot{at: at}, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := t.notifier.Send(ctx, r.Destination, r.Message()); err != nil {
			t.logger.Error("reminder delivery failed",
				"handle", handle, "destination", r.Destination, "event_title", r.EventTitle, "error", err)
			return
		}
		t.logger.Info("reminder delivered", "handle", handle, "destination", r.Destination)
	}))
	return handle, nil
}
