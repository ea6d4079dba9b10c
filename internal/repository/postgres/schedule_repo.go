package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"schedulebot/internal/domain"
)

// datetimeLayout is the wall-clock text format of the datetime column. The
// zone is implied by the repository's fixed location, never stored.
const datetimeLayout = "2006-01-02 15:04"

type scheduleRepository struct {
	DB  *sql.DB
	loc *time.Location
}

// NewScheduleRepository returns an EventRepository backed by the schedules
// table. All datetime text is interpreted in loc.
func NewScheduleRepository(db *sql.DB, loc *time.Location) domain.EventRepository {
	return &scheduleRepository{
		DB:  db,
		loc: loc,
	}
}

// Migrate creates the schedules table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			datetime TEXT NOT NULL,
			role TEXT NOT NULL,
			created_by BIGINT NOT NULL
		)
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schedules table: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Insert(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO schedules (title, datetime, role, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	dt := e.ScheduledAt.In(r.loc).Format(datetimeLayout)
	return r.DB.QueryRowContext(ctx, query, e.Title, dt, string(e.Audience), e.CreatedBy).Scan(&e.ID)
}

func (r *scheduleRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, datetime, role, created_by
		FROM schedules
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var dt, role string
		if err := rows.Scan(&e.ID, &e.Title, &dt, &role, &e.CreatedBy); err != nil {
			return nil, err
		}
		scheduledAt, err := time.ParseInLocation(datetimeLayout, dt, r.loc)
		if err != nil {
			return nil, fmt.Errorf("schedule %d has malformed datetime %q: %w", e.ID, dt, err)
		}
		e.ScheduledAt = scheduledAt
		audience, err := domain.ParseAudience(role)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %w", e.ID, err)
		}
		e.Audience = audience
		events = append(events, e)
	}
	return events, rows.Err()
}
