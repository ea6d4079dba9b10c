package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"schedulebot/internal/domain"
	"schedulebot/internal/services"
)

const helpText = `📘 Command Guide

🧩 /addschedule → Quick entry
📊 /viewschedule → Show schedules
👤 /addadmin USER_ID → Owner only
👥 /addmember USER_ID → Admin+

✨ Tip:
You can also use dashboard buttons!`

// Router is the transport boundary: it decodes raw inbound text and button
// payloads into intents once and dispatches to the wizard and services.
// Inputs for a single user arrive serialized; different users may be routed
// concurrently.
type Router struct {
	transport domain.Transport
	wizard    *services.Wizard
	gate      domain.RoleGate
	schedules domain.ScheduleService
	loc       *time.Location
	logger    *slog.Logger
}

// NewRouter wires the chat boundary.
func NewRouter(
	transport domain.Transport,
	wizard *services.Wizard,
	gate domain.RoleGate,
	schedules domain.ScheduleService,
	loc *time.Location,
	logger *slog.Logger,
) *Router {
	return &Router{
		transport: transport,
		wizard:    wizard,
		gate:      gate,
		schedules: schedules,
		loc:       loc,
		logger:    logger,
	}
}

// HandleMessage processes a plain text message from userID: commands first,
// then wizard input when a dialogue is open. Stray text outside a dialogue is
// dropped.
func (r *Router) HandleMessage(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return r.handleCommand(ctx, userID, text)
	}
	if r.wizard.Active(userID) {
		return r.wizard.HandleText(ctx, userID, text)
	}
	return nil
}

// HandleCallback processes a button press from userID. Unknown payloads are
// logged and dropped; wizard intents without an open dialogue are dropped.
func (r *Router) HandleCallback(ctx context.Context, userID int64, payload string) error {
	intent, ok := domain.ParseIntent(payload)
	if !ok {
		r.logger.Warn("unknown callback payload", "user_id", userID, "payload", payload)
		return nil
	}
	switch intent {
	case domain.IntentAddSchedule:
		return r.wizard.Start(ctx, userID)
	case domain.IntentViewSchedule:
		return r.viewSchedules(ctx, userID)
	case domain.IntentHelp:
		return r.transport.Send(ctx, userID, helpText)
	case domain.IntentAddAdmin:
		return r.transport.Send(ctx, userID, "Use /addadmin USER_ID")
	case domain.IntentAddMember:
		return r.transport.Send(ctx, userID, "Use /addmember USER_ID")
	default:
		err := r.wizard.HandleIntent(ctx, userID, intent)
		if errors.Is(err, domain.ErrNoSession) {
			return nil
		}
		return err
	}
}

func (r *Router) handleCommand(ctx context.Context, userID int64, text string) error {
	fields := strings.Fields(text)
	args := fields[1:]
	switch fields[0] {
	case "/start":
		return r.dashboard(ctx, userID)
	case "/help":
		return r.transport.Send(ctx, userID, helpText)
	case "/addschedule":
		return r.wizard.Start(ctx, userID)
	case "/viewschedule":
		return r.viewSchedules(ctx, userID)
	case "/addadmin":
		return r.addAdmin(ctx, userID, args)
	case "/addmember":
		return r.addMember(ctx, userID, args)
	}
	return nil
}

func (r *Router) dashboard(ctx context.Context, userID int64) error {
	role := r.gate.RoleOf(ctx, userID)
	if role == domain.RoleGuest {
		return r.transport.Send(ctx, userID, "❌ Access denied.")
	}

	choices := []domain.Choice{
		{Label: "➕ Add Schedule", Intent: domain.IntentAddSchedule},
		{Label: "📅 View Schedules", Intent: domain.IntentViewSchedule},
		{Label: "❓ Help Center", Intent: domain.IntentHelp},
	}
	switch role {
	case domain.RoleOwner:
		choices = append(choices,
			domain.Choice{Label: "👤 Add Admin", Intent: domain.IntentAddAdmin},
			domain.Choice{Label: "👥 Add Member", Intent: domain.IntentAddMember},
		)
	case domain.RoleAdmin:
		choices = append(choices,
			domain.Choice{Label: "👥 Add Member", Intent: domain.IntentAddMember},
		)
	}

	text := fmt.Sprintf("✨ Welcome!\n\n👑 Role: %s\n\n📌 Manage your schedules easily\n⚡ Use buttons below to navigate", role)
	return r.transport.Send(ctx, userID, text, choices...)
}

func (r *Router) viewSchedules(ctx context.Context, userID int64) error {
	events, err := r.schedules.ListSchedules(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return r.transport.Send(ctx, userID, "❌ Access denied.")
		}
		r.logger.Error("listing schedules failed", "user_id", userID, "error", err)
		return r.transport.Send(ctx, userID, "⚠ Could not load schedules.")
	}
	if len(events) == 0 {
		return r.transport.Send(ctx, userID, "📭 No schedules saved yet.")
	}

	var b strings.Builder
	b.WriteString("📅 Your Scheduled Events\n\n")
	for _, e := range events {
		fmt.Fprintf(&b, "🔹 %s\n🕒 %s\n🎯 %s\n\n",
			e.Title, e.ScheduledAt.In(r.loc).Format("2006-01-02 15:04"), e.Audience)
	}
	return r.transport.Send(ctx, userID, b.String())
}

func (r *Router) addAdmin(ctx context.Context, userID int64, args []string) error {
	target, err := parseUserID(args)
	if err != nil {
		return r.transport.Send(ctx, userID, "Usage: /addadmin USER_ID")
	}
	if err := r.gate.AddAdmin(ctx, userID, target); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return r.transport.Send(ctx, userID, "❌ Owner only")
		}
		r.logger.Error("add admin failed", "actor_id", userID, "target_id", target, "error", err)
		return r.transport.Send(ctx, userID, "⚠ Could not update roles.")
	}
	return r.transport.Send(ctx, userID, "✅ Admin added successfully")
}

func (r *Router) addMember(ctx context.Context, userID int64, args []string) error {
	target, err := parseUserID(args)
	if err != nil {
		return r.transport.Send(ctx, userID, "Usage: /addmember USER_ID")
	}
	if err := r.gate.AddMember(ctx, userID, target); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return r.transport.Send(ctx, userID, "❌ Not allowed")
		}
		r.logger.Error("add member failed", "actor_id", userID, "target_id", target, "error", err)
		return r.transport.Send(ctx, userID, "⚠ Could not update roles.")
	}
	return r.transport.Send(ctx, userID, "✅ Member added successfully")
}

func parseUserID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one argument")
	}
	return strconv.ParseInt(args[0], 10, 64)
}
