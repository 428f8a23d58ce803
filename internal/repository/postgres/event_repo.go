package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, date, created_at, updated_at
		FROM events
		ORDER BY date, id
		LIMIT $1 OFFSET $2
	`, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, name, description, date, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id))
}

func (r *eventRepository) GetByName(ctx context.Context, name string) (*domain.Event, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, name, description, date, created_at, updated_at
		FROM events
		WHERE name = $1
	`, name))
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO events (name, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Description, e.Date, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pqUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE events
		SET name = $2, description = $3, date = $4, updated_at = $5
		WHERE id = $1
	`, e.ID, e.Name, e.Description, e.Date, e.UpdatedAt)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pqUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the event, all of its association rows, and its tickets in
// a single transaction. The referenced entities themselves are untouched.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, kind := range domain.Kinds() {
		query := fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1`, kind.JoinTable)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE event_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// SetAssociations replaces the event's full selection for every kind in one
// transaction (overwrite-by-replace, not a diff).
func (r *eventRepository) SetAssociations(ctx context.Context, eventID int64, assoc *domain.EventAssociations) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, kind := range domain.Kinds() {
		if err := replaceAssociations(ctx, tx, kind, eventID, assoc.ForKind(kind)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) GetAssociations(ctx context.Context, eventID int64) (*domain.EventAssociations, error) {
	assoc := &domain.EventAssociations{}
	for _, kind := range domain.Kinds() {
		ids, err := listAssociatedIDs(ctx, r.DB, kind, eventID)
		if err != nil {
			return nil, err
		}
		assoc.SetForKind(kind, ids)
	}
	return assoc, nil
}

func (r *eventRepository) ListByEntityRef(ctx context.Context, kind domain.Kind, entityID int64) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.description, e.date, e.created_at, e.updated_at
		FROM events e
		JOIN %s j ON j.event_id = e.id
		WHERE j.%s = $1
		ORDER BY e.date, e.id
	`, kind.JoinTable, kind.JoinColumn)
	rows, err := r.DB.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
