package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"schedulebot/internal/clock"
	"schedulebot/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Wizard is the multi-step dialogue collecting an event's fields:
// title, date, time, audience, then a confirm/cancel summary. Every
// validation failure re-prompts the same step and keeps what was already
// collected. Only a confirm touches the event store and the reminder
// scheduler; every other step mutates nothing but the session.
type Wizard struct {
	sessions  *SessionTable
	events    domain.EventRepository
	scheduler domain.ReminderScheduler
	gate      domain.RoleGate
	transport domain.Transport
	clk       clock.Clock
	loc       *time.Location
	logger    *slog.Logger
}

// NewWizard wires the collector. All dates and times the wizard accepts are
// interpreted in loc.
func NewWizard(
	sessions *SessionTable,
	events domain.EventRepository,
	scheduler domain.ReminderScheduler,
	gate domain.RoleGate,
	transport domain.Transport,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) *Wizard {
	return &Wizard{
		sessions:  sessions,
		events:    events,
		scheduler: scheduler,
		gate:      gate,
		transport: transport,
		clk:       clk,
		loc:       loc,
		logger:    logger,
	}
}

// Active reports whether userID has a live wizard session.
func (w *Wizard) Active(userID int64) bool {
	_, ok := w.sessions.Get(userID)
	return ok
}

// Start opens a new session for userID and prompts for the title. Guests are
// refused. A previous unfinished session for the same user is replaced.
func (w *Wizard) Start(ctx context.Context, userID int64) error {
	if w.gate.RoleOf(ctx, userID) == domain.RoleGuest {
		return w.transport.Send(ctx, userID, "❌ Access denied.")
	}
	w.sessions.Put(&domain.Session{UserID: userID, State: domain.StateTitle})
	return w.promptTitle(ctx, userID)
}

// HandleText feeds a plain text input to userID's session. Returns
// ErrNoSession when no dialogue is open.
func (w *Wizard) HandleText(ctx context.Context, userID int64, text string) error {
	sess, ok := w.sessions.Get(userID)
	if !ok {
		return domain.ErrNoSession
	}
	switch sess.State {
	case domain.StateTitle:
		return w.collectTitle(ctx, sess, text)
	case domain.StateDate:
		return w.collectDate(ctx, sess, text)
	case domain.StateTime:
		return w.collectTime(ctx, sess, text)
	case domain.StateTarget:
		// Free text where a button press is expected: offer the buttons again.
		return w.promptTarget(ctx, sess.UserID)
	case domain.StateConfirm:
		return w.promptConfirm(ctx, sess)
	}
	return nil
}

// HandleIntent feeds a decoded button press to userID's session. Returns
// ErrNoSession when no dialogue is open.
func (w *Wizard) HandleIntent(ctx context.Context, userID int64, intent domain.Intent) error {
	sess, ok := w.sessions.Get(userID)
	if !ok {
		return domain.ErrNoSession
	}
	switch sess.State {
	case domain.StateTarget:
		switch intent {
		case domain.IntentTargetAdmin:
			return w.collectTarget(ctx, sess, domain.AudienceAdmin)
		case domain.IntentTargetMember:
			return w.collectTarget(ctx, sess, domain.AudienceMember)
		}
		return w.promptTarget(ctx, sess.UserID)
	case domain.StateConfirm:
		switch intent {
		case domain.IntentConfirm:
			return w.confirm(ctx, sess)
		case domain.IntentCancel:
			return w.cancel(ctx, sess)
		}
		return w.promptConfirm(ctx, sess)
	}
	return nil
}

func (w *Wizard) collectTitle(ctx context.Context, sess *domain.Session, text string) error {
	title := strings.TrimSpace(text)
	if title == "" {
		return w.transport.Send(ctx, sess.UserID, "❌ Event name cannot be empty. Try again:")
	}
	sess.Title = title
	sess.State = domain.StateDate
	return w.transport.Send(ctx, sess.UserID,
		"🧩 Step 2 / 4\n\n📅 Enter Date\nExample: 2026-02-12 or today or tomorrow")
}

func (w *Wizard) collectDate(ctx context.Context, sess *domain.Session, text string) error {
	input := strings.ToLower(strings.TrimSpace(text))
	now := w.clk.Now().In(w.loc)

	var date time.Time
	switch input {
	case "today":
		date = now
	case "tomorrow":
		date = now.AddDate(0, 0, 1)
	default:
		parsed, err := time.ParseInLocation(dateLayout, input, w.loc)
		if err != nil {
			return w.transport.Send(ctx, sess.UserID, "❌ Invalid date format.")
		}
		date = parsed
	}

	sess.Date = date.Format(dateLayout)
	sess.State = domain.StateTime
	return w.transport.Send(ctx, sess.UserID,
		"🧩 Step 3 / 4\n\n⏰ Enter Time\nExample: 18:30")
}

func (w *Wizard) collectTime(ctx context.Context, sess *domain.Session, text string) error {
	parsed, err := time.Parse(timeLayout, strings.TrimSpace(text))
	if err != nil {
		return w.transport.Send(ctx, sess.UserID, "❌ Invalid time. Use 24-hour HH:MM, e.g. 18:30.")
	}
	sess.Time = parsed.Format(timeLayout)
	sess.State = domain.StateTarget
	return w.promptTarget(ctx, sess.UserID)
}

func (w *Wizard) collectTarget(ctx context.Context, sess *domain.Session, audience domain.Audience) error {
	sess.Audience = audience
	sess.State = domain.StateConfirm
	return w.promptConfirm(ctx, sess)
}

func (w *Wizard) confirm(ctx context.Context, sess *domain.Session) error {
	scheduledAt, err := time.ParseInLocation(dateLayout+" "+timeLayout, sess.Date+" "+sess.Time, w.loc)
	if err != nil {
		// Both fields were validated on entry, so this is an internal fault.
		w.logger.Error("session has malformed date/time",
			"user_id", sess.UserID, "date", sess.Date, "time", sess.Time, "error", err)
		return w.transport.Send(ctx, sess.UserID, "⚠ Could not save your schedule. Please try again.")
	}

	event := domain.NewEvent(sess.Title, scheduledAt, sess.Audience, sess.UserID)
	if err := w.events.Insert(ctx, event); err != nil {
		// The session stays in Confirm; the user may retry or cancel.
		w.logger.Error("schedule insert failed", "user_id", sess.UserID, "title", sess.Title, "error", err)
		return w.transport.Send(ctx, sess.UserID, "⚠ Could not save your schedule. Please try again.")
	}

	sess.State = domain.StateDone
	w.sessions.Remove(sess.UserID)

	// Reminder registration failures are non-fatal: the event is saved either way.
	w.scheduler.Schedule(ctx, event, w.clk.Now())

	return w.transport.Send(ctx, sess.UserID, "🎉 Schedule saved successfully!")
}

func (w *Wizard) cancel(ctx context.Context, sess *domain.Session) error {
	sess.State = domain.StateCancelled
	w.sessions.Remove(sess.UserID)
	return w.transport.Send(ctx, sess.UserID, "❌ Schedule cancelled")
}

func (w *Wizard) promptTitle(ctx context.Context, userID int64) error {
	return w.transport.Send(ctx, userID, "🧩 Step 1 / 4\n\n✏ Enter Event Name:")
}

func (w *Wizard) promptTarget(ctx context.Context, userID int64) error {
	return w.transport.Send(ctx, userID,
		"🧩 Step 4 / 4\n\n🎯 Who should receive this?",
		domain.Choice{Label: "👑 Admin", Intent: domain.IntentTargetAdmin},
		domain.Choice{Label: "👥 Member", Intent: domain.IntentTargetMember},
	)
}

func (w *Wizard) promptConfirm(ctx context.Context, sess *domain.Session) error {
	summary := fmt.Sprintf("📋 Confirm Schedule\n\n📌 %s\n🕒 %s %s\n🎯 %s",
		sess.Title, sess.Date, sess.Time, sess.Audience)
	return w.transport.Send(ctx, sess.UserID, summary,
		domain.Choice{Label: "✅ Confirm", Intent: domain.IntentConfirm},
		domain.Choice{Label: "❌ Cancel", Intent: domain.IntentCancel},
	)
}
