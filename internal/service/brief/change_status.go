package brief

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// ChangeBriefStatus records a recipient's review decision (accept, reject or
// request modification). An optional comment, mandatory for
// needs_modification, is created before the status moves; if the status
// update fails the comment and its counter increment are undone.
func (s *Service) ChangeBriefStatus(ctx context.Context, input ChangeStatusInput) (*StatusResult, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if input.BriefID == uuid.Nil {
		return nil, domain.NewValidationError("brief_id", "required")
	}

	current, actor, err := s.requireAnyAccess(ctx, input.BriefID, p)
	if err != nil {
		return nil, err
	}

	// Workflow checks come before field validation: an accepted brief is
	// frozen whatever the request looks like.
	if current.Status.IsTerminal() {
		return nil, forbidden("brief is %s and can no longer change", current.Status)
	}
	if !input.Target.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	t, ok := reviewTriggers[input.Target]
	if !ok {
		return nil, forbidden("status %s cannot be requested", input.Target)
	}

	next, err := nextStatus(current.Status, t, actor.Role)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		steps   []step
		comment *domain.Comment
		count   int
		updated *domain.Brief
	)

	text := ""
	if input.Comment != nil {
		text = strings.TrimSpace(*input.Comment)
	}
	if text != "" {
		steps = append(steps, s.commentSteps(current.ID, p.ID, text, &comment, &count)...)
	}

	steps = append(steps,
		step{
			name:   "update brief status",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				b, err := s.briefs.UpdateStatus(ctx, current.ID, current.Status, next, p.ID)
				if err != nil {
					return err
				}
				updated = b
				return nil
			},
		},
		s.auditStep(p.ID, domain.AuditActionBriefStatusChanged, func() domain.AuditEntry {
			return domain.AuditEntry{
				EntityID: current.ID,
				OldData:  map[string]any{"status": current.Status.String()},
				NewData:  map[string]any{"status": next.String(), "with_comment": comment != nil},
			}
		}),
	)
	if text != "" {
		steps = append(steps, s.auditStep(p.ID, domain.AuditActionCommentCreated, func() domain.AuditEntry {
			return domain.AuditEntry{
				EntityID: current.ID,
				NewData:  map[string]any{"comment_id": comment.ID.String(), "content": comment.Content},
			}
		}))
	}

	if err := s.runSteps(ctx, steps); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "brief status changed",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", current.ID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", next.String()),
	)

	res := &StatusResult{
		BriefID:        current.ID,
		PreviousStatus: current.Status,
		Status:         updated.Status,
		ChangedAt:      updated.StatusChangedAt,
		CommentCount:   updated.CommentCount,
	}
	if comment != nil {
		res.Comment = toCommentRecord(comment)
	}
	return res, nil
}
