package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// SessionProvider resolves opaque request credentials (bearer token) into a
// session. A nil session with a nil error means "no valid session": expired,
// revoked, malformed or absent credentials all look identical to the caller,
// which must treat them as unauthenticated. A non-nil error is an
// infrastructure failure and must also deny.
type SessionProvider interface {
	GetSession(ctx context.Context, credentials string) (*domain.Session, error)
}

// SessionIssuer is the write side of session management, used by the login
// and logout flows.
type SessionIssuer interface {
	Issue(user *domain.User) (string, error)
	Revoke(ctx context.Context, credentials string) error
}
