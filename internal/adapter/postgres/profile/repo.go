// Package profile implements the local identity profile repository.
package profile

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

var columns = []string{"id", "email", "role", "created_at", "updated_at"}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:        r.ID,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// GetByID returns a profile by identity id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var dst row
	err := postgres.Get(ctx, q, &dst, postgres.Psql.Select(columns...).From("profiles").Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}
	return dst.toDomain(), nil
}

// GetByEmail returns the profile registered under email (case-insensitive).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var dst row
	err := postgres.Get(ctx, q, &dst, postgres.Psql.Select(columns...).From("profiles").
		Where(sq.Expr("lower(email) = ?", domain.NormalizeEmail(email))))
	if err != nil {
		return nil, postgres.MapError(err, "profile", uuid.Nil)
	}
	return dst.toDomain(), nil
}

// Upsert creates the profile or refreshes its email and role.
// An email already owned by a different identity yields domain.ErrAlreadyExists.
func (r *Repo) Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Psql.Insert("profiles").
		Columns("id", "email", "role").
		Values(p.ID, domain.NormalizeEmail(p.Email), string(p.Role)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, role = EXCLUDED.role
RETURNING id, email, role, created_at, updated_at`)

	var dst row
	if err := postgres.Get(ctx, q, &dst, ins); err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}
	return dst.toDomain(), nil
}
