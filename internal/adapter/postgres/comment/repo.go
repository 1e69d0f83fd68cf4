// Package comment implements the brief comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

const table = "brief_comments"

var columns = []string{"id", "brief_id", "author_id", "content", "created_at"}

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new comment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	BriefID   uuid.UUID `db:"brief_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        r.ID,
		BriefID:   r.BriefID,
		AuthorID:  r.AuthorID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

// GetByID returns a comment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var dst row
	err := postgres.Get(ctx, q, &dst, postgres.Psql.Select(columns...).From(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return dst.toDomain(), nil
}

// ListByBrief returns the comments of a brief in posting order.
func (r *Repo) ListByBrief(ctx context.Context, briefID uuid.UUID) ([]*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []row
	err := postgres.Select(ctx, q, &rows,
		postgres.Psql.Select(columns...).From(table).
			Where(sq.Eq{"brief_id": briefID}).
			OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]*domain.Comment, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// Create inserts a comment. The brief's counter is maintained by the caller.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Psql.Insert(table).
		Columns("brief_id", "author_id", "content").
		Values(c.BriefID, c.AuthorID, c.Content).
		Suffix("RETURNING id, brief_id, author_id, content, created_at")

	var dst row
	if err := postgres.Get(ctx, q, &dst, ins); err != nil {
		return nil, postgres.MapError(err, "comment on brief", c.BriefID)
	}
	return dst.toDomain(), nil
}

// Delete removes a comment.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := postgres.Exec(ctx, q, postgres.Psql.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
