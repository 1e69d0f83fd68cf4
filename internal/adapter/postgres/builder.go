package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
)

// Psql is the squirrel builder configured for PostgreSQL placeholders.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Get builds the query and scans exactly one row into dst.
// pgx.ErrNoRows is returned unchanged when nothing matches.
func Get(ctx context.Context, q Querier, dst any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Get(ctx, q, dst, query, args...)
}

// Select builds the query and scans all rows into dst (a pointer to a slice).
func Select(ctx context.Context, q Querier, dst any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dst, query, args...)
}

// Exec builds and executes a statement that returns no rows.
func Exec(ctx context.Context, q Querier, b sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}
	return q.Exec(ctx, query, args...)
}

// Count runs a COUNT(*) query and returns the result.
func Count(ctx context.Context, q Querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
