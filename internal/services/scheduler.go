package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"schedulebot/internal/domain"
)

// reminderStep is one rung of the lead-time ladder. A rung with a threshold
// is included only while more than that much time remains before the event;
// the final rungs are always considered.
type reminderStep struct {
	threshold time.Duration
	lead      time.Duration
	label     string
}

var thresholdSteps = []reminderStep{
	{threshold: 2 * time.Hour, lead: time.Hour, label: "⏰ 1 Hour Remaining"},
	{threshold: 30 * time.Minute, lead: 30 * time.Minute, label: "⏰ 30 Minutes Remaining"},
	{threshold: 10 * time.Minute, lead: 10 * time.Minute, label: "⏰ 10 Minutes Remaining"},
}

var finalSteps = []reminderStep{
	{lead: time.Minute, label: "⚡ 1 Minute Remaining"},
	{lead: 0, label: "🚀 Event Started!"},
}

type reminderScheduler struct {
	timer   domain.TimerService
	alerter domain.Alerter
	logger  *slog.Logger
}

// NewReminderScheduler returns a ReminderScheduler registering reminders with
// the given timer. Registration failures are reported through alerter and do
// not abort the remaining reminders.
func NewReminderScheduler(timer domain.TimerService, alerter domain.Alerter, logger *slog.Logger) domain.ReminderScheduler {
	return &reminderScheduler{
		timer:   timer,
		alerter: alerter,
		logger:  logger,
	}
}

// Schedule walks the lead-time ladder for event and registers every reminder
// whose fire time is still in the future. Reminders of one event fire in
// descending lead order because fire times grow as leads shrink; no explicit
// ordering is applied.
func (s *reminderScheduler) Schedule(ctx context.Context, event *domain.Event, now time.Time) []domain.Reminder {
	diff := event.ScheduledAt.Sub(now)

	steps := make([]reminderStep, 0, len(thresholdSteps)+len(finalSteps))
	for _, step := range thresholdSteps {
		if diff > step.threshold {
			steps = append(steps, step)
		}
	}
	steps = append(steps, finalSteps...)

	var registered []domain.Reminder
	for _, step := range steps {
		fireAt := event.ScheduledAt.Add(-step.lead)
		if !fireAt.After(now) {
			continue
		}
		r := domain.Reminder{
			Lead:        step.lead,
			Label:       step.label,
			FireAt:      fireAt,
			EventTitle:  event.Title,
			Destination: event.CreatedBy,
		}
		handle, err := s.timer.Schedule(fireAt, r)
		if err != nil {
			s.logger.Error("reminder registration failed",
				"event_id", event.ID, "lead", step.lead, "fire_at", fireAt, "error", err)
			body := fmt.Sprintf("event %d (%s): reminder with lead %s could not be registered: %v",
				event.ID, event.Title, step.lead, err)
			if aerr := s.alerter.Alert(ctx, "reminder registration failed", body); aerr != nil {
				s.logger.Error("operator alert failed", "error", aerr)
			}
			continue
		}
		s.logger.Info("reminder registered",
			"handle", handle, "event_id", event.ID, "lead", step.lead, "fire_at", fireAt)
		registered = append(registered, r)
	}
	return registered
}
