package domain

import (
	"strings"
	"time"
)

// AllowlistEntry is a normalized email permitted to register an account.
type AllowlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail applies the canonical form used both when storing an
// allow-list entry and when checking a candidate against it: surrounding
// whitespace stripped, lowercased. Idempotent.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// RegistrationDecision is the outcome of the pre-registration gate. A false
// Authorized is a hard stop for account creation; Kind carries the taxonomy
// error the edge should translate, Reason the message surfaced to the caller.
type RegistrationDecision struct {
	Authorized bool
	Reason     string
	Kind       error
}
