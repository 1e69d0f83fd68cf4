// Package identity provisions local profiles for identities issued by the
// external identity provider and exposes them to the brief engine.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
	"github.com/heartmarshall/briefdesk-backend/pkg/ctxutil"
)

// pendingResolver links share records addressed to an email to the identity
// that registered it.
type pendingResolver interface {
	ResolvePendingForIdentity(ctx context.Context, identityID uuid.UUID, email string) (int, error)
}

// Service implements profile provisioning.
type Service struct {
	dir      *Directory
	resolver pendingResolver
	log      *slog.Logger
}

// NewService creates a new identity service.
func NewService(log *slog.Logger, dir *Directory, resolver pendingResolver) *Service {
	return &Service{
		dir:      dir,
		resolver: resolver,
		log:      log.With("service", "identity"),
	}
}

// ProfileRecord is the caller's profile.
type ProfileRecord struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// SyncResult reports a completed Sync.
type SyncResult struct {
	Profile             ProfileRecord `json:"profile"`
	ResolvedInvitations int           `json:"resolvedInvitations"`
}

// Sync provisions or refreshes the caller's profile from the token claims in
// ctx and links pending invitations sent to the caller's email. It is meant
// to be called after every login and is idempotent.
//
// A missing role claim keeps the stored role, or defaults to client for a
// new profile.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	email := domain.NormalizeEmail(ctxutil.EmailFromCtx(ctx))
	role := domain.Role(ctxutil.RoleFromCtx(ctx))

	var errs []domain.FieldError
	if !domain.IsValidEmail(email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "token carries no valid email"})
	}
	if role != "" && !role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be creator or client"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	existing, err := s.dir.profiles.GetByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		existing = nil
	case err != nil:
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if role == "" {
		role = domain.RoleClient
		if existing != nil {
			role = existing.Role
		}
	}

	p, err := s.dir.profiles.Upsert(ctx, domain.Profile{ID: id, Email: email, Role: role})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("email %s belongs to another identity: %w", email, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	if existing != nil && existing.Email != p.Email {
		s.dir.forget(ctx, *existing)
	}
	s.dir.remember(ctx, *p)

	resolved, err := s.resolver.ResolvePendingForIdentity(ctx, p.ID, p.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve invitations: %w", err)
	}

	s.log.InfoContext(ctx, "profile synced",
		slog.String("user_id", p.ID.String()),
		slog.String("role", p.Role.String()),
		slog.Bool("created", existing == nil),
		slog.Int("resolved_invitations", resolved),
	)

	return &SyncResult{
		Profile: ProfileRecord{
			ID:        p.ID,
			Email:     p.Email,
			Role:      p.Role,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		ResolvedInvitations: resolved,
	}, nil
}
