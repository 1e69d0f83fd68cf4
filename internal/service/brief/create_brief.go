package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// CreateBrief creates a draft brief owned by the caller.
// Only principals whose profile role is creator may create briefs.
func (s *Service) CreateBrief(ctx context.Context, input CreateBriefInput) (*BriefDetail, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	role, err := s.identities.RoleOf(ctx, p.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("profile not provisioned: %w", domain.ErrForbidden)
	case err != nil:
		return nil, classify(fmt.Errorf("role lookup: %w", err))
	case !role.CanCreateBriefs():
		return nil, fmt.Errorf("role %s cannot create briefs: %w", role, domain.ErrForbidden)
	}

	draft := &domain.Brief{
		OwnerID: p.ID,
		Header:  strings.TrimSpace(input.Header),
		Content: input.Content,
		Footer:  trimOrNil(input.Footer),
	}

	var created *domain.Brief
	err = s.runSteps(ctx, []step{
		{
			name:   "insert brief",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
					if err := s.briefs.LockOwner(txCtx, p.ID); err != nil {
						return err
					}
					if err := s.checkBriefCapacity(txCtx, p.ID); err != nil {
						return err
					}
					b, err := s.briefs.Create(txCtx, draft)
					if err != nil {
						return fmt.Errorf("create brief: %w", err)
					}
					created = b
					return nil
				})
			},
		},
		s.auditStep(p.ID, domain.AuditActionBriefCreated, func() domain.AuditEntry {
			return domain.AuditEntry{EntityID: created.ID, NewData: created.Snapshot()}
		}),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "brief created",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", created.ID.String()),
	)

	return toDetail(created, Actor{Role: ActorOwner, Principal: p}, nil), nil
}
