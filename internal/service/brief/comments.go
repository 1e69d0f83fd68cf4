package brief

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// commentSteps inserts a comment and increments the brief's counter. If the
// increment fails the inserted comment is deleted again, so a comment never
// exists without being counted. *out and *count receive the results.
func (s *Service) commentSteps(briefID, authorID uuid.UUID, content string, out **domain.Comment, count *int) []step {
	return []step{
		{
			name:   "insert comment",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				c, err := s.comments.Create(ctx, &domain.Comment{
					BriefID:  briefID,
					AuthorID: authorID,
					Content:  content,
				})
				if err != nil {
					return err
				}
				*out = c
				return nil
			},
			undo: func(ctx context.Context) error {
				return s.comments.Delete(ctx, (*out).ID)
			},
		},
		{
			name:   "increment comment count",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				n, err := s.briefs.IncrementCommentCount(ctx, briefID)
				if err != nil {
					return err
				}
				*count = n
				return nil
			},
			undo: func(ctx context.Context) error {
				_, err := s.briefs.DecrementCommentCount(ctx, briefID)
				return err
			},
		},
	}
}

// AddComment posts a comment on a brief the caller owns or was invited to.
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*CommentRecord, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, _, err := s.requireAnyAccess(ctx, input.BriefID, p)
	if err != nil {
		return nil, err
	}

	var (
		created *domain.Comment
		count   int
	)
	steps := s.commentSteps(b.ID, p.ID, strings.TrimSpace(input.Content), &created, &count)
	steps = append(steps, s.auditStep(p.ID, domain.AuditActionCommentCreated, func() domain.AuditEntry {
		return domain.AuditEntry{
			EntityID: b.ID,
			NewData:  map[string]any{"comment_id": created.ID.String(), "content": created.Content},
		}
	}))

	if err := s.runSteps(ctx, steps); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", b.ID.String()),
		slog.String("comment_id", created.ID.String()),
		slog.Int("comment_count", count),
	)

	return toCommentRecord(created), nil
}

// DeleteComment removes a comment. Only its author may delete it. The
// counter decrement is best-effort: the comment stays deleted even if the
// counter cannot be updated.
func (s *Service) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return err
	}

	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return classify(fmt.Errorf("get comment: %w", err))
	}
	if c.AuthorID != p.ID {
		return fmt.Errorf("comment %s: author only: %w", commentID, domain.ErrForbidden)
	}

	err = s.runSteps(ctx, []step{
		s.auditStep(p.ID, domain.AuditActionCommentDeleted, func() domain.AuditEntry {
			return domain.AuditEntry{
				EntityID: c.BriefID,
				OldData:  map[string]any{"comment_id": c.ID.String(), "content": c.Content},
			}
		}),
		{
			name:   "delete comment",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				return s.comments.Delete(ctx, c.ID)
			},
		},
		{
			name:   "decrement comment count",
			policy: bestEffort,
			apply: func(ctx context.Context) error {
				_, err := s.briefs.DecrementCommentCount(ctx, c.BriefID)
				return err
			},
		},
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "comment deleted",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", c.BriefID.String()),
		slog.String("comment_id", c.ID.String()),
	)

	return nil
}

// ListComments returns a brief's comments in posting order.
func (s *Service) ListComments(ctx context.Context, briefID uuid.UUID) ([]*CommentRecord, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.requireAnyAccess(ctx, briefID, p); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByBrief(ctx, briefID)
	if err != nil {
		return nil, classify(fmt.Errorf("list comments: %w", err))
	}

	out := make([]*CommentRecord, len(comments))
	for i, c := range comments {
		out[i] = toCommentRecord(c)
	}
	return out, nil
}

