package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql methods satisfied by both *sql.DB
// and *sql.Tx. Association helpers take a Querier so they can run either
// standalone or inside a larger event transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
