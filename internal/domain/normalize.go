package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims and lower-cases an address so lookups and the
// (brief_id, lower(email)) uniqueness rule agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
