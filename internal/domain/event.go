package domain

import (
	"context"
	"fmt"
	"time"
)

// Audience is who an event's reminders are addressed to.
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudienceMember Audience = "member"
)

// ParseAudience converts a stored role column value back to an Audience.
func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceAdmin:
		return AudienceAdmin, nil
	case AudienceMember:
		return AudienceMember, nil
	}
	return "", fmt.Errorf("unknown audience %q", s)
}

// Event represents a confirmed scheduled event. Events are immutable once
// inserted; there is no update or delete.
type Event struct {
	ID          int64
	Title       string
	ScheduledAt time.Time
	Audience    Audience
	CreatedBy   int64
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on insert.
func NewEvent(title string, scheduledAt time.Time, audience Audience, createdBy int64) *Event {
	return &Event{
		Title:       title,
		ScheduledAt: scheduledAt,
		Audience:    audience,
		CreatedBy:   createdBy,
	}
}

// EventRepository defines the interface for event storage. The store is
// append-only: insertion order is the only ordering ListAll guarantees.
type EventRepository interface {
	Insert(ctx context.Context, event *Event) error
	ListAll(ctx context.Context) ([]*Event, error)
}

// ScheduleService defines the business logic for reading schedules.
type ScheduleService interface {
	ListSchedules(ctx context.Context, userID int64) ([]*Event, error)
}
