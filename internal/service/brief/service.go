// Package brief is the brief lifecycle and access-control engine: it decides
// who may see or change a brief, drives the status workflow, manages sharing
// (including invitees without an account), keeps the comment counter in step
// with comment rows and records the audit trail.
package brief

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
	"github.com/heartmarshall/briefdesk-backend/pkg/ctxutil"
)

type briefRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brief, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Brief, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	List(ctx context.Context, filter domain.BriefFilter) ([]*domain.Brief, int, error)
	LockOwner(ctx context.Context, ownerID uuid.UUID) error
	Create(ctx context.Context, b *domain.Brief) (*domain.Brief, error)
	UpdateContent(ctx context.Context, id uuid.UUID, params domain.BriefContentParams) (*domain.Brief, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.BriefStatus, changedBy uuid.UUID) (*domain.Brief, error)
	IncrementCommentCount(ctx context.Context, id uuid.UUID) (int, error)
	DecrementCommentCount(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipientRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	FindForPrincipal(ctx context.Context, briefID, principalID uuid.UUID, email string) (*domain.Recipient, error)
	ListByBrief(ctx context.Context, briefID uuid.UUID) ([]*domain.Recipient, error)
	CountByBrief(ctx context.Context, briefID uuid.UUID) (int, error)
	ExistsByEmail(ctx context.Context, briefID uuid.UUID, email string) (bool, error)
	Create(ctx context.Context, r *domain.Recipient) (*domain.Recipient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResolvePending(ctx context.Context, identityID uuid.UUID, email string) ([]uuid.UUID, error)
}

type commentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByBrief(ctx context.Context, briefID uuid.UUID) ([]*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// identityDirectory answers questions about identities the engine does not own.
type identityDirectory interface {
	// FindIdentityByEmail returns the id registered under email, if any.
	FindIdentityByEmail(ctx context.Context, email string) (uuid.UUID, bool, error)
	// RoleOf returns the role of a provisioned identity or domain.ErrNotFound.
	RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error)
}

// Capacity ceilings.
const (
	MaxBriefsPerOwner     = 20
	MaxRecipientsPerBrief = 10
)

// MaxPage bounds listing pages so the row offset cannot overflow.
const MaxPage = 100_000

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// Options tunes listing behaviour.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Service orchestrates every brief use case.
type Service struct {
	briefs     briefRepo
	recipients recipientRepo
	comments   commentRepo
	audit      auditLogger
	tx         txManager
	identities identityDirectory
	opts       Options
	log        *slog.Logger
}

// NewService creates a new brief Service.
func NewService(
	log *slog.Logger,
	briefs briefRepo,
	recipients recipientRepo,
	comments commentRepo,
	audit auditLogger,
	tx txManager,
	identities identityDirectory,
	opts Options,
) *Service {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &Service{
		briefs:     briefs,
		recipients: recipients,
		comments:   comments,
		audit:      audit,
		tx:         tx,
		identities: identities,
		opts:       opts,
		log:        log.With("service", "brief"),
	}
}

// principalFromCtx builds the caller from the identity values the transport
// put into ctx.
func principalFromCtx(ctx context.Context) (domain.Principal, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return domain.Principal{
		ID:    id,
		Email: domain.NormalizeEmail(ctxutil.EmailFromCtx(ctx)),
		Role:  domain.Role(ctxutil.RoleFromCtx(ctx)),
	}, nil
}
