package domain

import "errors"

// Closed authorization error taxonomy. Guards, gates and the services built
// on them fail only with these kinds (possibly wrapped for context); the HTTP
// edge translates exactly these kinds to status codes and lets anything else
// reach the generic 500 branch. No kind is ever dropped: every deny path
// surfaces one of these, never a default-allow.
var (
	// ErrUnauthorized: no valid session / caller not authenticated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: authenticated but lacking role, ownership or permission.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: referenced identity or resource record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation: malformed input to a gate (e.g. empty or invalid email).
	ErrValidation = errors.New("invalid input")
	// ErrConflict: duplicate record (e.g. allow-list entry already present).
	ErrConflict = errors.New("conflict")
	// ErrInternal: unclassified failure in a downstream collaborator.
	ErrInternal = errors.New("internal error")
)

// Error pairs a taxonomy kind with a caller-facing message. errors.Is
// matches the kind through Unwrap; Error() renders only the message, so
// handlers can surface it without the kind's sentinel text tacked on.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// E builds a taxonomy error with a caller-facing message.
func E(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}
