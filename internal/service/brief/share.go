package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// ShareBrief invites an email to review the brief. The invitee does not need
// an account: the share record stays pending until ResolvePendingForIdentity
// links it. The first share moves a draft to sent.
func (s *Service) ShareBrief(ctx context.Context, input ShareInput) (*RecipientRecord, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(input.Email)
	if email == p.Email {
		return nil, domain.NewValidationError("email", "cannot share a brief with yourself")
	}

	if _, _, err := s.requireOwner(ctx, input.BriefID, p); err != nil {
		return nil, err
	}

	var inviteeID *uuid.UUID
	id, found, err := s.identities.FindIdentityByEmail(ctx, email)
	switch {
	case err != nil:
		s.log.WarnContext(ctx, "invitee lookup failed",
			slog.String("brief_id", input.BriefID.String()),
			slog.String("error", err.Error()),
		)
	case found:
		inviteeID = &id
	}

	var (
		created *domain.Recipient
		before  domain.BriefStatus
		after   domain.BriefStatus
	)
	err = s.runSteps(ctx, []step{
		{
			name:   "insert recipient",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
					b, err := s.briefs.GetByIDForUpdate(txCtx, input.BriefID)
					if err != nil {
						return fmt.Errorf("lock brief: %w", err)
					}
					before, after = b.Status, b.Status

					if err := s.checkRecipientCapacity(txCtx, b.ID); err != nil {
						return err
					}

					exists, err := s.recipients.ExistsByEmail(txCtx, b.ID, email)
					if err != nil {
						return fmt.Errorf("check recipient: %w", err)
					}
					if exists {
						return fmt.Errorf("brief already shared with %s: %w", email, domain.ErrConflict)
					}

					r, err := s.recipients.Create(txCtx, &domain.Recipient{
						BriefID:        b.ID,
						RecipientID:    inviteeID,
						RecipientEmail: email,
						SharedBy:       p.ID,
					})
					if errors.Is(err, domain.ErrAlreadyExists) {
						return fmt.Errorf("brief already shared with %s: %w", email, domain.ErrConflict)
					}
					if err != nil {
						return fmt.Errorf("create recipient: %w", err)
					}
					created = r

					next, err := nextStatus(b.Status, triggerShare, ActorOwner)
					if err != nil {
						return err
					}
					if next == b.Status {
						return nil
					}
					if _, err := s.briefs.UpdateStatus(txCtx, b.ID, b.Status, next, p.ID); err != nil {
						return fmt.Errorf("mark sent: %w", err)
					}
					after = next
					return nil
				})
			},
		},
		s.auditStep(p.ID, domain.AuditActionBriefShared, func() domain.AuditEntry {
			e := domain.AuditEntry{
				EntityID: input.BriefID,
				NewData: map[string]any{
					"recipient_id":    created.ID.String(),
					"email":           email,
					"invitee_existed": inviteeID != nil,
				},
			}
			if after != before {
				e.OldData = map[string]any{"status": before.String()}
				e.NewData["status"] = after.String()
			}
			return e
		}),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "brief shared",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", input.BriefID.String()),
		slog.Bool("invitee_existed", inviteeID != nil),
		slog.String("status", after.String()),
	)

	rec := toRecipientRecord(created)
	return &rec, nil
}

// RevokeRecipient removes a share record. Revoking the last recipient sends
// the brief back to draft; that reset is best-effort because the revoke
// itself has already happened.
func (s *Service) RevokeRecipient(ctx context.Context, briefID, recipientRecordID uuid.UUID) error {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return err
	}

	b, actor, err := s.requireOwner(ctx, briefID, p)
	if err != nil {
		return err
	}

	rec, err := s.recipients.GetByID(ctx, recipientRecordID)
	if err != nil {
		return classify(fmt.Errorf("get recipient: %w", err))
	}
	if rec.BriefID != b.ID {
		return fmt.Errorf("recipient %s: %w", recipientRecordID, domain.ErrNotFound)
	}

	remaining, err := s.recipients.CountByBrief(ctx, b.ID)
	if err != nil {
		return classify(fmt.Errorf("count recipients: %w", err))
	}
	wasLast := remaining <= 1

	steps := []step{
		s.auditStep(p.ID, domain.AuditActionRecipientRevoked, func() domain.AuditEntry {
			return domain.AuditEntry{
				EntityID: b.ID,
				OldData: map[string]any{
					"recipient_id": rec.ID.String(),
					"email":        rec.RecipientEmail,
					"pending":      rec.IsPending(),
				},
			}
		}),
		{
			name:   "delete recipient",
			policy: mustApply,
			apply: func(ctx context.Context) error {
				return s.recipients.Delete(ctx, rec.ID)
			},
		},
	}

	if wasLast {
		next, err := nextStatus(b.Status, triggerLastRecipientRevoked, actor.Role)
		if err != nil {
			return err
		}
		if next != b.Status {
			steps = append(steps, step{
				name:   "reset status to draft",
				policy: bestEffort,
				apply: func(ctx context.Context) error {
					_, err := s.briefs.UpdateStatus(ctx, b.ID, b.Status, next, p.ID)
					return err
				},
			})
		}
	}

	if err := s.runSteps(ctx, steps); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "recipient revoked",
		slog.String("user_id", p.ID.String()),
		slog.String("brief_id", b.ID.String()),
		slog.String("recipient_id", rec.ID.String()),
		slog.Bool("was_last", wasLast),
	)

	return nil
}

// ListRecipients returns every share record of a brief. Owner only.
func (s *Service) ListRecipients(ctx context.Context, briefID uuid.UUID) ([]RecipientRecord, error) {
	p, err := principalFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.requireOwner(ctx, briefID, p); err != nil {
		return nil, err
	}

	recipients, err := s.recipients.ListByBrief(ctx, briefID)
	if err != nil {
		return nil, classify(fmt.Errorf("list recipients: %w", err))
	}
	return toRecipientRecords(recipients), nil
}

// ResolvePendingForIdentity links every pending share addressed to email to
// identityID. It is idempotent: a second call returns 0.
func (s *Service) ResolvePendingForIdentity(ctx context.Context, identityID uuid.UUID, email string) (int, error) {
	email = domain.NormalizeEmail(email)
	if identityID == uuid.Nil {
		return 0, domain.NewValidationError("identity_id", "required")
	}
	if !domain.IsValidEmail(email) {
		return 0, domain.NewValidationError("email", "invalid format")
	}

	briefIDs, err := s.recipients.ResolvePending(ctx, identityID, email)
	if err != nil {
		return 0, classify(fmt.Errorf("resolve pending: %w", err))
	}
	if len(briefIDs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(briefIDs))
	for i, id := range briefIDs {
		ids[i] = id.String()
	}
	err = s.audit.Log(ctx, domain.AuditEntry{
		ActorID:    identityID,
		Action:     domain.AuditActionInvitationsResolved,
		EntityType: domain.EntityTypeProfile,
		EntityID:   identityID,
		NewData:    map[string]any{"brief_ids": ids, "email": email},
	})
	if err != nil {
		s.log.WarnContext(ctx, "audit write failed",
			slog.String("action", string(domain.AuditActionInvitationsResolved)),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "pending invitations resolved",
		slog.String("user_id", identityID.String()),
		slog.Int("count", len(briefIDs)),
	)

	return len(briefIDs), nil
}
