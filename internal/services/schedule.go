package services

import (
	"context"
	"fmt"

	"schedulebot/internal/domain"
)

type scheduleService struct {
	events domain.EventRepository
	gate   domain.RoleGate
}

// NewScheduleService returns a ScheduleService guarding reads with the role gate.
func NewScheduleService(events domain.EventRepository, gate domain.RoleGate) domain.ScheduleService {
	return &scheduleService{
		events: events,
		gate:   gate,
	}
}

// ListSchedules returns every saved event in insertion order. Guests are refused.
func (s *scheduleService) ListSchedules(ctx context.Context, userID int64) ([]*domain.Event, error) {
	if s.gate.RoleOf(ctx, userID) == domain.RoleGuest {
		return nil, domain.ErrAccessDenied
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return events, nil
}
