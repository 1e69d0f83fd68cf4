package brief

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// checkBriefCapacity must run inside the creating transaction after
// briefRepo.LockOwner, which makes the ceiling hard.
func (s *Service) checkBriefCapacity(ctx context.Context, ownerID uuid.UUID) error {
	n, err := s.briefs.CountByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("count briefs: %w", err)
	}
	if n >= MaxBriefsPerOwner {
		return &domain.LimitError{Resource: "briefs", Limit: MaxBriefsPerOwner}
	}
	return nil
}

// checkRecipientCapacity must run inside the sharing transaction after the
// brief row was locked with GetByIDForUpdate.
func (s *Service) checkRecipientCapacity(ctx context.Context, briefID uuid.UUID) error {
	n, err := s.recipients.CountByBrief(ctx, briefID)
	if err != nil {
		return fmt.Errorf("count recipients: %w", err)
	}
	if n >= MaxRecipientsPerBrief {
		return &domain.LimitError{Resource: "recipients", Limit: MaxRecipientsPerBrief}
	}
	return nil
}
