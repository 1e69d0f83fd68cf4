package brief

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// GetBrief returns a brief the caller owns or was invited to.
// An unrelated caller gets domain.ErrNotFound, exactly like a missing brief.
func (s *Service) GetBrief(ctx context.Context, briefID uuid.UUID) (*BriefDetail, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	b, actor, err := s.requireAnyAccess(ctx, briefID, p)
	if err != nil {
		return nil, err
	}

	var recipients []*domain.Recipient
	if actor.IsOwner() {
		recipients, err = s.recipients.ListByBrief(ctx, briefID)
		if err != nil {
			return nil, classify(fmt.Errorf("list recipients: %w", err))
		}
	}

	return toDetail(b, actor, recipients), nil
}

// ListBriefs returns one page of the briefs the caller owns and/or was
// invited to. Invitations match on id or email.
func (s *Service) ListBriefs(ctx context.Context, input ListBriefsInput) (*Page[BriefSummary], error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope := input.Scope
	if scope == "" {
		scope = domain.BriefScopeAll
	}
	page := max(input.Page, 1)
	limit := input.Limit
	if limit == 0 {
		limit = s.opts.DefaultPageSize
	}
	limit = min(limit, s.opts.MaxPageSize)

	briefs, total, err := s.briefs.List(ctx, domain.BriefFilter{
		PrincipalID:    p.ID,
		PrincipalEmail: p.Email,
		Scope:          scope,
		Status:         input.Status,
		Limit:          limit,
		Offset:         (page - 1) * limit,
	})
	if err != nil {
		return nil, classify(fmt.Errorf("list briefs: %w", err))
	}

	items := make([]BriefSummary, len(briefs))
	for i, b := range briefs {
		items[i] = toSummary(b, p.ID)
	}

	return &Page[BriefSummary]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// GetBriefHistory returns the audit trail of a brief, newest first. Owner only.
func (s *Service) GetBriefHistory(ctx context.Context, briefID uuid.UUID, limit int) ([]HistoryEntry, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	if _, _, err := s.requireOwner(ctx, briefID, p); err != nil {
		return nil, err
	}

	entries, err := s.audit.ListByEntity(ctx, domain.EntityTypeBrief, briefID, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("list history: %w", err))
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = toHistoryEntry(e)
	}
	return out, nil
}
