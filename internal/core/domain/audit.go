package domain

import "time"

// AuditEvent records a denied authorization attempt for operator-side
// investigation. It is emitted fire-and-forget; losing one under load is
// acceptable, blocking a guard on one is not.
type AuditEvent struct {
	PrincipalID string    `json:"principal_id"`
	Email       string    `json:"email"`
	Guard       string    `json:"guard"`
	Reason      string    `json:"reason"`
	At          time.Time `json:"at"`
}
