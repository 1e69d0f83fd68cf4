// Package recipient implements persistence for brief share records,
// including invitations addressed to emails with no account yet.
package recipient

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

const table = "brief_recipients"

var columns = []string{"id", "brief_id", "recipient_id", "recipient_email", "shared_by", "shared_at"}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides recipient persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new recipient repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	BriefID        uuid.UUID  `db:"brief_id"`
	RecipientID    *uuid.UUID `db:"recipient_id"`
	RecipientEmail string     `db:"recipient_email"`
	SharedBy       uuid.UUID  `db:"shared_by"`
	SharedAt       time.Time  `db:"shared_at"`
}

func (r row) toDomain() *domain.Recipient {
	return &domain.Recipient{
		ID:             r.ID,
		BriefID:        r.BriefID,
		RecipientID:    r.RecipientID,
		RecipientEmail: r.RecipientEmail,
		SharedBy:       r.SharedBy,
		SharedAt:       r.SharedAt,
	}
}

// GetByID returns a share record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var dst row
	err := postgres.Get(ctx, q, &dst,
		postgres.Psql.Select(columns...).From(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, postgres.MapError(err, "recipient", id)
	}
	return dst.toDomain(), nil
}

// FindForPrincipal returns the share record on briefID that matches either
// the principal's id or email. Resolved rows win over pending ones.
// Returns domain.ErrNotFound when the principal is not a recipient.
func (r *Repo) FindForPrincipal(ctx context.Context, briefID, principalID uuid.UUID, email string) (*domain.Recipient, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sel := postgres.Psql.Select(columns...).From(table).
		Where(sq.Eq{"brief_id": briefID}).
		Where(sq.Or{
			sq.Eq{"recipient_id": principalID},
			sq.Expr("lower(recipient_email) = ?", domain.NormalizeEmail(email)),
		}).
		OrderBy("recipient_id IS NULL", "shared_at").
		Limit(1)

	var dst row
	if err := postgres.Get(ctx, q, &dst, sel); err != nil {
		return nil, postgres.MapError(err, "recipient of brief", briefID)
	}
	return dst.toDomain(), nil
}

// ListByBrief returns all share records of a brief, oldest first.
func (r *Repo) ListByBrief(ctx context.Context, briefID uuid.UUID) ([]*domain.Recipient, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []row
	err := postgres.Select(ctx, q, &rows,
		postgres.Psql.Select(columns...).From(table).
			Where(sq.Eq{"brief_id": briefID}).
			OrderBy("shared_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	out := make([]*domain.Recipient, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CountByBrief returns the number of live share records on a brief.
func (r *Repo) CountByBrief(ctx context.Context, briefID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	n, err := postgres.Count(ctx, q,
		postgres.Psql.Select("count(*)").From(table).Where(sq.Eq{"brief_id": briefID}))
	if err != nil {
		return 0, fmt.Errorf("count recipients: %w", err)
	}
	return n, nil
}

// ExistsByEmail reports whether briefID is already shared with email.
func (r *Repo) ExistsByEmail(ctx context.Context, briefID uuid.UUID, email string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM brief_recipients WHERE brief_id = $1 AND lower(recipient_email) = $2)`,
		briefID, domain.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recipient email: %w", err)
	}
	return exists, nil
}

// Create inserts a share record. A duplicate (brief, email) pair yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rec *domain.Recipient) (*domain.Recipient, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Psql.Insert(table).
		Columns("brief_id", "recipient_id", "recipient_email", "shared_by").
		Values(rec.BriefID, rec.RecipientID, domain.NormalizeEmail(rec.RecipientEmail), rec.SharedBy).
		Suffix(returning)

	var dst row
	if err := postgres.Get(ctx, q, &dst, ins); err != nil {
		return nil, postgres.MapError(err, "recipient of brief", rec.BriefID)
	}
	return dst.toDomain(), nil
}

// Delete removes a share record.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := postgres.Exec(ctx, q, postgres.Psql.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, "recipient", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipient %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ResolvePending fills recipient_id on every pending invitation addressed to
// email and returns the ids of the affected briefs. Rows that are already
// resolved are never touched, so repeated calls return an empty slice.
func (r *Repo) ResolvePending(ctx context.Context, identityID uuid.UUID, email string) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	upd := postgres.Psql.Update(table).
		Set("recipient_id", identityID).
		Where(sq.Expr("lower(recipient_email) = ?", domain.NormalizeEmail(email))).
		Where(sq.Eq{"recipient_id": nil}).
		Suffix("RETURNING brief_id")

	var briefIDs []uuid.UUID
	if err := postgres.Select(ctx, q, &briefIDs, upd); err != nil {
		return nil, fmt.Errorf("resolve pending recipients: %w", err)
	}
	if briefIDs == nil {
		briefIDs = []uuid.UUID{}
	}
	return briefIDs, nil
}
