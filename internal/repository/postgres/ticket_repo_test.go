package postgres

import (
	"context"
	"testing"
	"time"

	"conferencehub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tickets \(code, event_id, user_id, created_at\)`).
					WithArgs("a1b2c3", int64(1), int64(2), now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(15)))
			},
		},
		{
			name: "already registered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tickets`).
					WillReturnError(&pq.Error{Code: pq.ErrorCode(pqUniqueViolation)})
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name: "unknown event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tickets`).
					WillReturnError(&pq.Error{Code: pq.ErrorCode(pqForeignKeyViolation)})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			ticket := &domain.Ticket{Code: "a1b2c3", EventID: 1, UserID: 2, CreatedAt: now}
			err = repo.Create(ctx, ticket)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(15), ticket.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, code, event_id, user_id, created_at\s+FROM tickets\s+WHERE user_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "event_id", "user_id", "created_at"}).
			AddRow(int64(15), "a1b2c3", int64(1), int64(2), now))

	repo := NewTicketRepository(db)
	tickets, err := repo.ListByUserID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.Equal(t, "a1b2c3", tickets[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM tickets WHERE id = \$1`).
			WithArgs(int64(15)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewTicketRepository(db)
		require.NoError(t, repo.Delete(ctx, 15))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM tickets WHERE id = \$1`).
			WithArgs(int64(15)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewTicketRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, 15), domain.ErrNotFound)
	})
}
