package brief

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// UpdateBriefContent edits header, content and/or footer. Any edit sends a
// non-terminal brief back to draft; accepted briefs cannot be edited.
func (s *Service) UpdateBriefContent(ctx context.Context, input UpdateBriefInput) (*BriefDetail, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, actor, err := s.requireOwner(ctx, input.BriefID, p)
	if err != nil {
		return nil, err
	}

	next, err := nextStatus(current.Status, triggerOwnerEdit, actor.Role)
	if err != nil {
		return nil, err
	}

	params := domain.BriefContentParams{
		Header:         trimmed(input.Header),
		Content:        input.Content,
		Footer:         trimmed(input.Footer),
		ExpectedStatus: current.Status,
		ChangedBy:      p.ID,
	}
	if next != current.Status {
		params.ResetStatus = &next
	}

	var updated *domain.Brief
	err = s.runSteps(ctx, []step{
		{
			name:   "update brief content",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				b, err := s.briefs.UpdateContent(ctx, input.BriefID, params)
				if err != nil {
					return fmt.Errorf("update brief: %w", err)
				}
				updated = b
				return nil
			},
		},
		s.auditStep(p.ID, domain.AuditActionBriefUpdated, func() domain.AuditEntry {
			return domain.AuditEntry{
				EntityID: current.ID,
				OldData:  current.Snapshot(),
				NewData:  updated.Snapshot(),
			}
		}),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "brief updated",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	// The edit is committed; a failed recipient read only trims the response.
	recipients, err := s.recipients.ListByBrief(ctx, updated.ID)
	if err != nil {
		s.log.WarnContext(ctx, "list recipients after update",
			slog.String("brief_id", updated.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	return toDetail(updated, actor, recipients), nil
}
