package domain

import "github.com/google/uuid"

// BriefFilter contains filtering/pagination parameters for brief listings.
type BriefFilter struct {
	// PrincipalID and PrincipalEmail identify the caller. Shared briefs match
	// on either, so invitations sent before registration are included.
	PrincipalID    uuid.UUID
	PrincipalEmail string

	Scope  BriefScope
	Status *BriefStatus

	Limit  int
	Offset int
}
