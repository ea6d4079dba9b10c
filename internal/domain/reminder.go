package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reminder is a lead-time notification derived from an event. It exists only
// as a live timer registration and is never persisted; nothing survives a
// process restart.
type Reminder struct {
	Lead        time.Duration
	Label       string
	FireAt      time.Time
	EventTitle  string
	Destination int64
}

// Message renders the delivery text for this reminder.
func (r Reminder) Message() string {
	return r.Label + "\n\n📌 " + r.EventTitle
}

// TimerHandle identifies a live reminder registration. Handles are currently
// only logged; they would need to be persisted keyed by event id before
// cancellation could be supported.
type TimerHandle = uuid.UUID

// TimerService registers a one-shot callback firing at an absolute future
// time. Fire-and-forget: no cancellation is offered.
type TimerService interface {
	Schedule(at time.Time, r Reminder) (TimerHandle, error)
}

// ReminderScheduler computes which lead-time reminders are still meaningful
// for an event and registers each with the timer. It returns the reminders
// actually registered.
type ReminderScheduler interface {
	Schedule(ctx context.Context, event *Event, now time.Time) []Reminder
}

// Alerter reports operational failures to an operator channel.
type Alerter interface {
	Alert(ctx context.Context, subject, body string) error
}
