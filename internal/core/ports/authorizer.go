package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// Authorizer is the guard surface exposed to handlers and middleware. Every
// method resolves the caller's principal (memoized within the request scope
// carried by ctx) and returns it only when the authorization condition
// holds. Failure modes form a closed contract:
//
//   - domain.ErrUnauthorized: no valid session
//   - domain.ErrNotFound: session exists but the identity record is gone
//   - domain.ErrForbidden: authenticated but insufficient privilege
//
// Resolution failures are propagated unchanged, never reclassified as
// ErrForbidden.
type Authorizer interface {
	// Principal resolves the caller without imposing any condition.
	Principal(ctx context.Context) (*domain.Principal, error)
	// RequireAdmin allows only callers with the admin role.
	RequireAdmin(ctx context.Context) (*domain.Principal, error)
	// RequireOwnershipOrAdmin allows the owner of the resource or an admin.
	// Ownership is checked before the role fallback.
	RequireOwnershipOrAdmin(ctx context.Context, ownerID string) (*domain.Principal, error)
	// RequirePermission defers the decision to the static permission matrix.
	RequirePermission(ctx context.Context, action, resource string) (*domain.Principal, error)
}
