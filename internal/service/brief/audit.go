package brief

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// auditStep records one entry about a brief. build runs when the step is
// applied, so it may read results of earlier steps; it fills EntityID and
// the snapshots. Destructive actions are mustApply so the removal is
// aborted when its forensic record cannot be written.
func (s *Service) auditStep(actorID uuid.UUID, action domain.AuditAction, build func() domain.AuditEntry) step {
	p := bestEffort
	if action.IsDestructive() {
		p = mustApply
	}
	return step{
		name:   "audit " + string(action),
		policy: p,
		apply: func(ctx context.Context) error {
			e := build()
			e.ActorID = actorID
			e.Action = action
			e.EntityType = domain.EntityTypeBrief
			return s.audit.Log(ctx, e)
		},
	}
}
