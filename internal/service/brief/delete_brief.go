package brief

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// DeleteBrief removes a brief with its recipients and comments. The audit
// entry is written in the same transaction as the delete; if it cannot be
// written nothing is deleted.
func (s *Service) DeleteBrief(ctx context.Context, briefID uuid.UUID) error {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return err
	}

	b, _, err := s.requireOwner(ctx, briefID, p)
	if err != nil {
		return err
	}

	audit := s.auditStep(p.ID, domain.AuditActionBriefDeleted, func() domain.AuditEntry {
		return domain.AuditEntry{EntityID: b.ID, OldData: b.Snapshot()}
	})

	err = s.runSteps(ctx, []step{{
		name:   "delete brief",
		policy: mustApply,
		apply: func(ctx context.Context) error {
			return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
				if err := audit.apply(txCtx); err != nil {
					return fmt.Errorf("%s: %w", audit.name, err)
				}
				return s.briefs.Delete(txCtx, b.ID)
			})
		},
	}})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "brief deleted",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", b.ID.String()),
	)

	return nil
}
