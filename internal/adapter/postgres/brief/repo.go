// Package brief implements the Brief repository using PostgreSQL.
// Every query is scoped to the briefs table; access decisions are made by
// the service layer, never by joins here.
package brief

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

const table = "briefs"

var columns = []string{
	"id", "owner_id", "header", "content", "footer", "status",
	"status_changed_at", "status_changed_by", "comment_count",
	"created_at", "updated_at",
}

// Repo provides brief persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new brief repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID              uuid.UUID  `db:"id"`
	OwnerID         uuid.UUID  `db:"owner_id"`
	Header          string     `db:"header"`
	Content         string     `db:"content"`
	Footer          *string    `db:"footer"`
	Status          string     `db:"status"`
	StatusChangedAt *time.Time `db:"status_changed_at"`
	StatusChangedBy *uuid.UUID `db:"status_changed_by"`
	CommentCount    int        `db:"comment_count"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r row) toDomain() *domain.Brief {
	return &domain.Brief{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Header:          r.Header,
		Content:         r.Content,
		Footer:          r.Footer,
		Status:          domain.BriefStatus(r.Status),
		StatusChangedAt: r.StatusChangedAt,
		StatusChangedBy: r.StatusChangedBy,
		CommentCount:    r.CommentCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a brief by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brief, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate returns a brief and locks its row until the surrounding
// transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Brief, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Brief, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := postgres.Psql.Select(columns...).From(table).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	var dst row
	if err := postgres.Get(ctx, q, &dst, b); err != nil {
		return nil, postgres.MapError(err, "brief", id)
	}
	return dst.toDomain(), nil
}

// CountByOwner returns how many briefs ownerID currently has.
func (r *Repo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	n, err := postgres.Count(ctx, q,
		postgres.Psql.Select("count(*)").From(table).Where(sq.Eq{"owner_id": ownerID}))
	if err != nil {
		return 0, fmt.Errorf("count briefs by owner: %w", err)
	}
	return n, nil
}

// List returns one page of briefs visible to the filter's principal, most
// recently updated first, and the total number of matches.
func (r *Repo) List(ctx context.Context, f domain.BriefFilter) ([]*domain.Brief, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := scopeCondition(f)
	if f.Status != nil {
		where = sq.And{where, sq.Eq{"status": string(*f.Status)}}
	}

	total, err := postgres.Count(ctx, q, postgres.Psql.Select("count(*)").From(table).Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("count briefs: %w", err)
	}
	if total == 0 {
		return []*domain.Brief{}, 0, nil
	}

	sel := postgres.Psql.Select(columns...).From(table).Where(where).
		OrderBy("updated_at DESC", "id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	var rows []row
	if err := postgres.Select(ctx, q, &rows, sel); err != nil {
		return nil, 0, fmt.Errorf("list briefs: %w", err)
	}

	out := make([]*domain.Brief, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, total, nil
}

// scopeCondition matches shared briefs on recipient id or email so that
// invitations made before registration are listed too.
func scopeCondition(f domain.BriefFilter) sq.Sqlizer {
	owned := sq.Eq{"owner_id": f.PrincipalID}
	shared := sq.Expr(
		"id IN (SELECT brief_id FROM brief_recipients WHERE recipient_id = ? OR lower(recipient_email) = ?)",
		f.PrincipalID, domain.NormalizeEmail(f.PrincipalEmail),
	)

	switch f.Scope {
	case domain.BriefScopeOwned:
		return owned
	case domain.BriefScopeShared:
		return sq.And{shared, sq.NotEq{"owner_id": f.PrincipalID}}
	default:
		return sq.Or{owned, shared}
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// LockOwner takes a transaction-scoped advisory lock keyed on ownerID so
// concurrent creations for one owner serialise their capacity check.
// Must be called inside TxManager.RunInTx.
func (r *Repo) LockOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, ownerID); err != nil {
		return fmt.Errorf("lock owner %s: %w", ownerID, err)
	}
	return nil
}

// Create inserts a new draft brief and returns the persisted row.
func (r *Repo) Create(ctx context.Context, b *domain.Brief) (*domain.Brief, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Psql.Insert(table).
		Columns("owner_id", "header", "content", "footer", "status").
		Values(b.OwnerID, b.Header, b.Content, b.Footer, string(domain.BriefStatusDraft)).
		Suffix(returning)

	var dst row
	if err := postgres.Get(ctx, q, &dst, ins); err != nil {
		return nil, postgres.MapError(err, "brief", uuid.Nil)
	}
	return dst.toDomain(), nil
}

// UpdateContent applies a partial content update. An empty footer clears it.
// When p.ExpectedStatus is set and no longer matches, domain.ErrConflict is returned.
func (r *Repo) UpdateContent(ctx context.Context, id uuid.UUID, p domain.BriefContentParams) (*domain.Brief, error) {
	if p.IsEmpty() && p.ResetStatus == nil {
		return r.GetByID(ctx, id)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	upd := postgres.Psql.Update(table).Where(sq.Eq{"id": id})
	if p.ExpectedStatus != "" {
		upd = upd.Where(sq.Eq{"status": string(p.ExpectedStatus)})
	}
	if p.Header != nil {
		upd = upd.Set("header", *p.Header)
	}
	if p.Content != nil {
		upd = upd.Set("content", *p.Content)
	}
	if p.Footer != nil {
		if *p.Footer == "" {
			upd = upd.Set("footer", nil)
		} else {
			upd = upd.Set("footer", *p.Footer)
		}
	}
	if p.ResetStatus != nil {
		upd = upd.
			Set("status", string(*p.ResetStatus)).
			Set("status_changed_at", sq.Expr("now()")).
			Set("status_changed_by", p.ChangedBy)
	}

	var dst row
	if err := postgres.Get(ctx, q, &dst, upd.Suffix(returning)); err != nil {
		mapped := postgres.MapError(err, "brief", id)
		if p.ExpectedStatus != "" && errors.Is(mapped, domain.ErrNotFound) {
			return nil, fmt.Errorf("brief %s: status is no longer %s: %w", id, p.ExpectedStatus, domain.ErrConflict)
		}
		return nil, mapped
	}
	return dst.toDomain(), nil
}

// UpdateStatus moves a brief from expected to next. It is a compare-and-set:
// if the stored status is no longer expected, domain.ErrConflict is returned.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.BriefStatus, changedBy uuid.UUID) (*domain.Brief, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	upd := postgres.Psql.Update(table).
		Set("status", string(next)).
		Set("status_changed_at", sq.Expr("now()")).
		Set("status_changed_by", changedBy).
		Where(sq.Eq{"id": id, "status": string(expected)}).
		Suffix(returning)

	var dst row
	if err := postgres.Get(ctx, q, &dst, upd); err != nil {
		mapped := postgres.MapError(err, "brief", id)
		if errors.Is(mapped, domain.ErrNotFound) {
			return nil, fmt.Errorf("brief %s: status is no longer %s: %w", id, expected, domain.ErrConflict)
		}
		return nil, mapped
	}
	return dst.toDomain(), nil
}

// IncrementCommentCount atomically adds one to the counter and returns the new value.
func (r *Repo) IncrementCommentCount(ctx context.Context, id uuid.UUID) (int, error) {
	return r.adjustCommentCount(ctx, id, "comment_count + 1")
}

// DecrementCommentCount atomically subtracts one, never going below zero.
func (r *Repo) DecrementCommentCount(ctx context.Context, id uuid.UUID) (int, error) {
	return r.adjustCommentCount(ctx, id, "GREATEST(comment_count - 1, 0)")
}

func (r *Repo) adjustCommentCount(ctx context.Context, id uuid.UUID, expr string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	err := q.QueryRow(ctx,
		`UPDATE briefs SET comment_count = `+expr+` WHERE id = $1 RETURNING comment_count`, id,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "brief", id)
	}
	return n, nil
}

// Delete removes a brief; recipients and comments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := postgres.Exec(ctx, q, postgres.Psql.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "brief", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brief %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Maintenance
// ---------------------------------------------------------------------------

const reconcileSQL = `
UPDATE briefs b
SET comment_count = c.actual
FROM (
    SELECT b2.id, count(bc.id)::int AS actual
    FROM briefs b2
    LEFT JOIN brief_comments bc ON bc.brief_id = b2.id
    GROUP BY b2.id
) c
WHERE b.id = c.id AND b.comment_count <> c.actual`

// ReconcileCommentCounts rewrites every drifted counter from the live comment
// rows and returns how many briefs were repaired.
func (r *Repo) ReconcileCommentCounts(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, reconcileSQL)
	if err != nil {
		return 0, fmt.Errorf("reconcile comment counts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
