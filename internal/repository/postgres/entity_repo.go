package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"

	"github.com/lib/pq"
)

// Postgres error codes used to translate constraint violations.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type entityRepository struct {
	DB   *sql.DB
	kind domain.Kind
}

// NewEntityRepository returns a domain.EntityRepository for one entity kind,
// implemented with Postgres. The same implementation serves sponsors,
// caterings, categories, locations, resources, and prelegents; the kind
// metadata supplies the table and join-table names.
func NewEntityRepository(db *sql.DB, kind domain.Kind) domain.EntityRepository {
	return &entityRepository{DB: db, kind: kind}
}

func (r *entityRepository) Kind() domain.Kind {
	return r.kind
}

func (r *entityRepository) List(ctx context.Context) ([]*domain.Entity, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s
		ORDER BY name
	`, r.kind.Table)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*domain.Entity
	for rows.Next() {
		e := &domain.Entity{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *entityRepository) GetByID(ctx context.Context, id int64) (*domain.Entity, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.kind.Table)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *entityRepository) GetByName(ctx context.Context, name string) (*domain.Entity, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s
		WHERE name = $1
	`, r.kind.Table)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *entityRepository) GetByDescription(ctx context.Context, description string) (*domain.Entity, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s
		WHERE description = $1
	`, r.kind.Table)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, description))
}

func (r *entityRepository) scanOne(row *sql.Row) (*domain.Entity, error) {
	e := &domain.Entity{}
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *entityRepository) Create(ctx context.Context, e *domain.Entity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.kind.Table)
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Description, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pqUniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *entityRepository) Update(ctx context.Context, e *domain.Entity) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`, r.kind.Table)
	result, err := r.DB.ExecContext(ctx, query, e.ID, e.Name, e.Description, e.UpdatedAt)
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

// Delete removes the entity row. The foreign-key RESTRICT on the join table
// is the final guard: when a concurrent association slips past the service's
// usage-count check, the violation is reported as an in-use conflict with a
// freshly read count.
func (r *entityRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.kind.Table)
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pqForeignKeyViolation {
			count, countErr := r.CountEventRefs(ctx, id)
			if countErr != nil || count < 1 {
				count = 1
			}
			return &domain.InUseError{Count: count}
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *entityRepository) CountEventRefs(ctx context.Context, id int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, r.kind.JoinTable, r.kind.JoinColumn)
	var count int
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *entityRepository) ListIDsByEventID(ctx context.Context, eventID int64) ([]int64, error) {
	return listAssociatedIDs(ctx, r.DB, r.kind, eventID)
}

// listAssociatedIDs returns the entity ids attached to the event for one kind.
func listAssociatedIDs(ctx context.Context, q Querier, kind domain.Kind, eventID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE event_id = $1 ORDER BY %s`, kind.JoinColumn, kind.JoinTable, kind.JoinColumn)
	rows, err := q.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// replaceAssociations rewrites all join rows of one kind for the event:
// delete everything, then insert the new selection. Runs on the caller's
// Querier so the event save stays atomic across kinds.
func replaceAssociations(ctx context.Context, q Querier, kind domain.Kind, eventID int64, ids []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1`, kind.JoinTable)
	if _, err := q.ExecContext(ctx, deleteQuery, eventID); err != nil {
		return err
	}
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (event_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (event_id, %s) DO NOTHING
	`, kind.JoinTable, kind.JoinColumn, kind.JoinColumn)
	for _, id := range ids {
		if _, err := q.ExecContext(ctx, insertQuery, eventID, id); err != nil {
			var perr *pq.Error
			if errors.As(err, &perr) && perr.Code == pqForeignKeyViolation {
				return fmt.Errorf("%w: %s %d does not exist", domain.ErrInvalidInput, kind.Singular, id)
			}
			return err
		}
	}
	return nil
}
