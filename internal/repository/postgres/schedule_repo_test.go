package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"schedulebot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("IST", 5*3600+1800)

func TestScheduleRepository_Insert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:       "Demo",
				ScheduledAt: time.Date(2026, 2, 12, 18, 30, 0, 0, testZone),
				Audience:    domain.AudienceMember,
				CreatedBy:   42,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO schedules \(title, datetime, role, created_by\)`).
					WithArgs("Demo", "2026-02-12 18:30", "member", int64(42)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID:  1,
			wantErr: false,
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:       "Demo",
				ScheduledAt: time.Date(2026, 2, 12, 18, 30, 0, 0, testZone),
				Audience:    domain.AudienceAdmin,
				CreatedBy:   42,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO schedules`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduleRepository(db, testZone)
			err = repo.Insert(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("rows in insertion order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "title", "datetime", "role", "created_by"}).
			AddRow(int64(1), "Demo", "2026-02-12 18:30", "member", int64(42)).
			AddRow(int64(2), "Standup", "2026-02-13 09:00", "admin", int64(7))
		mock.ExpectQuery(`SELECT id, title, datetime, role, created_by`).
			WillReturnRows(rows)

		repo := NewScheduleRepository(db, testZone)
		events, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, int64(1), events[0].ID)
		assert.Equal(t, "Demo", events[0].Title)
		assert.Equal(t, time.Date(2026, 2, 12, 18, 30, 0, 0, testZone), events[0].ScheduledAt)
		assert.Equal(t, domain.AudienceMember, events[0].Audience)
		assert.Equal(t, int64(42), events[0].CreatedBy)

		assert.Equal(t, domain.AudienceAdmin, events[1].Audience)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, datetime, role, created_by`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "datetime", "role", "created_by"}))

		repo := NewScheduleRepository(db, testZone)
		events, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("malformed datetime", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "title", "datetime", "role", "created_by"}).
			AddRow(int64(1), "Demo", "next tuesday", "member", int64(42))
		mock.ExpectQuery(`SELECT id, title, datetime, role, created_by`).
			WillReturnRows(rows)

		repo := NewScheduleRepository(db, testZone)
		_, err = repo.ListAll(ctx)
		require.Error(t, err)
	})

	t.Run("unknown role column value", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "title", "datetime", "role", "created_by"}).
			AddRow(int64(1), "Demo", "2026-02-12 18:30", "everyone", int64(42))
		mock.ExpectQuery(`SELECT id, title, datetime, role, created_by`).
			WillReturnRows(rows)

		repo := NewScheduleRepository(db, testZone)
		_, err = repo.ListAll(ctx)
		require.Error(t, err)
	})
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schedules`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
