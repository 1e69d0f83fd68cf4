package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}

// profileCache is optional. Cache errors are logged and fall through to the repository.
type profileCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, bool, error)
	Set(ctx context.Context, p domain.Profile) error
	Invalidate(ctx context.Context, p domain.Profile) error
}

// Directory answers identity questions for the brief engine: does an email
// belong to a registered identity, and what role does an identity have.
type Directory struct {
	profiles profileRepo
	cache    profileCache
	log      *slog.Logger
}

// NewDirectory creates a Directory. cache may be nil.
func NewDirectory(log *slog.Logger, profiles profileRepo, cache profileCache) *Directory {
	return &Directory{
		profiles: profiles,
		cache:    cache,
		log:      log.With("service", "identity"),
	}
}

// FindIdentityByEmail returns the identity registered under email.
func (d *Directory) FindIdentityByEmail(ctx context.Context, email string) (uuid.UUID, bool, error) {
	email = domain.NormalizeEmail(email)

	p, err := d.cached(ctx, "email", func() (*domain.Profile, bool, error) {
		return d.cache.GetByEmail(ctx, email)
	}, func() (*domain.Profile, error) {
		return d.profiles.GetByEmail(ctx, email)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("find identity: %w", err)
	}
	return p.ID, true, nil
}

// RoleOf returns the role of a provisioned identity, or domain.ErrNotFound.
func (d *Directory) RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error) {
	p, err := d.cached(ctx, "id", func() (*domain.Profile, bool, error) {
		return d.cache.Get(ctx, id)
	}, func() (*domain.Profile, error) {
		return d.profiles.GetByID(ctx, id)
	})
	if err != nil {
		return "", fmt.Errorf("role of %s: %w", id, err)
	}
	return p.Role, nil
}

// cached is a read-through lookup. Misses are not cached.
func (d *Directory) cached(
	ctx context.Context,
	key string,
	fromCache func() (*domain.Profile, bool, error),
	fromRepo func() (*domain.Profile, error),
) (*domain.Profile, error) {
	if d.cache != nil {
		p, ok, err := fromCache()
		switch {
		case err != nil:
			d.log.WarnContext(ctx, "profile cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		case ok:
			return p, nil
		}
	}

	p, err := fromRepo()
	if err != nil {
		return nil, err
	}

	d.remember(ctx, *p)
	return p, nil
}

func (d *Directory) remember(ctx context.Context, p domain.Profile) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Set(ctx, p); err != nil {
		d.log.WarnContext(ctx, "profile cache write failed",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (d *Directory) forget(ctx context.Context, p domain.Profile) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Invalidate(ctx, p); err != nil {
		d.log.WarnContext(ctx, "profile cache invalidate failed",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
