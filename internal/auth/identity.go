package auth

import "github.com/google/uuid"

// Identity is the principal asserted by a validated access token.
// Email and Role may be empty when the issuer omits those claims.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  string
}
