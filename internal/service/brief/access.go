package brief

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// ActorRole tags how a principal relates to one brief.
type ActorRole int

const (
	ActorOwner ActorRole = iota + 1
	ActorRecipient
)

func (r ActorRole) String() string {
	switch r {
	case ActorOwner:
		return "owner"
	case ActorRecipient:
		return "recipient"
	}
	return "none"
}

// Actor is the resolved relation of a principal to a brief. It is produced
// once per operation and passed down instead of re-deriving ownership.
type Actor struct {
	Role      ActorRole
	Principal domain.Principal
	// Recipient is the matching share record when Role is ActorRecipient.
	Recipient *domain.Recipient
}

func (a Actor) IsOwner() bool { return a.Role == ActorOwner }

// resolveAccess loads the brief and determines the principal's relation to it.
// A nil Actor means the principal is neither owner nor recipient.
// It has no side effects.
func (s *Service) resolveAccess(ctx context.Context, briefID uuid.UUID, p domain.Principal) (*domain.Brief, *Actor, error) {
	b, err := s.briefs.GetByID(ctx, briefID)
	if err != nil {
		return nil, nil, classify(fmt.Errorf("get brief: %w", err))
	}

	if b.OwnerID == p.ID {
		return b, &Actor{Role: ActorOwner, Principal: p}, nil
	}

	rec, err := s.recipients.FindForPrincipal(ctx, briefID, p.ID, p.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return b, nil, nil
	}
	if err != nil {
		return nil, nil, classify(fmt.Errorf("find recipient: %w", err))
	}
	return b, &Actor{Role: ActorRecipient, Principal: p, Recipient: rec}, nil
}

// noAccess masks an unrelated principal as a missing brief so existence
// does not leak.
func noAccess(briefID uuid.UUID) error {
	return fmt.Errorf("brief %s: %w", briefID, domain.ErrNotFound)
}

// requireAnyAccess succeeds for the owner and for any recipient.
func (s *Service) requireAnyAccess(ctx context.Context, briefID uuid.UUID, p domain.Principal) (*domain.Brief, Actor, error) {
	b, actor, err := s.resolveAccess(ctx, briefID, p)
	if err != nil {
		return nil, Actor{}, err
	}
	if actor == nil {
		return nil, Actor{}, noAccess(briefID)
	}
	return b, *actor, nil
}

// requireOwner succeeds only for the brief's owner. Recipients get ErrForbidden.
func (s *Service) requireOwner(ctx context.Context, briefID uuid.UUID, p domain.Principal) (*domain.Brief, Actor, error) {
	b, actor, err := s.requireAnyAccess(ctx, briefID, p)
	if err != nil {
		return nil, Actor{}, err
	}
	if !actor.IsOwner() {
		return nil, Actor{}, fmt.Errorf("brief %s: owner only: %w", briefID, domain.ErrForbidden)
	}
	return b, actor, nil
}
