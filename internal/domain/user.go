package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated caller as supplied by the identity provider.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// Profile is the locally stored view of an identity.
type Profile struct {
	ID        uuid.UUID
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuditEntry is an append-only record of a state-changing operation.
type AuditEntry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     AuditAction
	EntityType EntityType
	EntityID   uuid.UUID
	OldData    map[string]any
	NewData    map[string]any
	CreatedAt  time.Time
}
