package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulebot/internal/domain"
)

func TestScheduleService_ListSchedules(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	gate := &fakeGate{roles: map[int64]domain.RoleCode{3: domain.RoleMember}}
	svc := NewScheduleService(repo, gate)

	event := domain.NewEvent("Demo", time.Date(2026, 2, 12, 18, 30, 0, 0, testZone), domain.AudienceMember, 3)
	require.NoError(t, repo.Insert(ctx, event))

	events, err := svc.ListSchedules(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Demo", events[0].Title)
}

func TestScheduleService_GuestDenied(t *testing.T) {
	repo := newFakeEventRepo()
	gate := &fakeGate{roles: map[int64]domain.RoleCode{}}
	svc := NewScheduleService(repo, gate)

	_, err := svc.ListSchedules(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}
