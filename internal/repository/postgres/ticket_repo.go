package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencehub/internal/domain"

	"github.com/lib/pq"
)

type ticketRepository struct {
	DB *sql.DB
}

// NewTicketRepository returns a domain.TicketRepository implemented with Postgres.
func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (code, event_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.Code, t.EventID, t.UserID, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) {
			switch perr.Code {
			case pqUniqueViolation:
				return domain.ErrAlreadyRegistered
			case pqForeignKeyViolation:
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `
		SELECT id, code, event_id, user_id, created_at
		FROM tickets
		WHERE id = $1
	`
	t := &domain.Ticket{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Code, &t.EventID, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	query := `
		SELECT id, code, event_id, user_id, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t := &domain.Ticket{}
		if err := rows.Scan(&t.ID, &t.Code, &t.EventID, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
