package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

type scopeKey struct{}

// RequestScope memoizes principal resolution for the lifetime of a single
// inbound request. Middleware attaches a fresh scope to the request context;
// when the request ends the scope is garbage with it, so a resolved
// principal can never outlive the request that produced it. A role change
// therefore takes effect on the very next request without any invalidation
// plumbing.
type RequestScope struct {
	credentials string

	once      sync.Once
	principal *domain.Principal
	err       error
}

// WithRequestScope returns a context carrying a fresh resolution scope for
// the given raw credentials (empty when the request carried none).
func WithRequestScope(ctx context.Context, credentials string) context.Context {
	return context.WithValue(ctx, scopeKey{}, &RequestScope{credentials: credentials})
}

// AuthzService resolves principals and evaluates authorization guards. It is
// stateless across requests; the only caching is the per-request scope above.
type AuthzService struct {
	sessions   ports.SessionProvider
	identities ports.IdentityRepository
	audit      ports.AuditSink
	log        zerolog.Logger
}

func NewAuthzService(sessions ports.SessionProvider, identities ports.IdentityRepository, audit ports.AuditSink, log zerolog.Logger) *AuthzService {
	return &AuthzService{sessions: sessions, identities: identities, audit: audit, log: log}
}

// Principal resolves the caller's identity, memoized within the request
// scope. Outside a scope (no middleware ran) resolution fails with
// ErrUnauthorized rather than guessing.
func (s *AuthzService) Principal(ctx context.Context) (*domain.Principal, error) {
	scope, ok := ctx.Value(scopeKey{}).(*RequestScope)
	if !ok {
		return nil, fmt.Errorf("no request scope: %w", domain.ErrUnauthorized)
	}
	scope.once.Do(func() {
		scope.principal, scope.err = s.resolve(ctx, scope.credentials)
	})
	return scope.principal, scope.err
}

func (s *AuthzService) resolve(ctx context.Context, credentials string) (*domain.Principal, error) {
	// A cancelled request must resolve to a denial, never a default-allow.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request cancelled: %w", domain.ErrUnauthorized)
	}
	if credentials == "" {
		return nil, fmt.Errorf("missing credentials: %w", domain.ErrUnauthorized)
	}

	sess, err := s.sessions.GetSession(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if sess == nil || sess.IdentityRef == "" {
		return nil, fmt.Errorf("no valid session: %w", domain.ErrUnauthorized)
	}

	user, err := s.identities.FindByID(ctx, sess.IdentityRef)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Detectable inconsistency: the record was deleted after the
			// session was issued. Distinct from "not authenticated".
			s.log.Warn().Str("identity_ref", sess.IdentityRef).Msg("identity record missing though session exists")
			return nil, fmt.Errorf("identity record missing: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	return domain.PrincipalOf(user), nil
}

// RequireAdmin returns the principal only when it holds the admin role.
func (s *AuthzService) RequireAdmin(ctx context.Context) (*domain.Principal, error) {
	p, err := s.Principal(ctx)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleAdmin {
		s.denied(p, "require_admin", "admin privileges required")
		return nil, domain.E(domain.ErrForbidden, "admin privileges required")
	}
	return p, nil
}

// RequireOwnershipOrAdmin returns the principal when it owns the resource or
// holds the admin role. Ownership is evaluated first, so an admin acting on
// their own resource is authorized as the owner (no audit noise from the
// role branch).
func (s *AuthzService) RequireOwnershipOrAdmin(ctx context.Context, ownerID string) (*domain.Principal, error) {
	p, err := s.Principal(ctx)
	if err != nil {
		return nil, err
	}
	if ownerID != "" && p.ID == ownerID {
		return p, nil
	}
	if p.Role == domain.RoleAdmin {
		return p, nil
	}
	s.denied(p, "require_ownership_or_admin", "caller is not the resource owner")
	return nil, domain.E(domain.ErrForbidden, "not authorized for this resource")
}

// RequirePermission defers the decision to the static permission matrix
// using the principal's role. Unknown roles and malformed action/resource
// pairs deny inside the matrix.
func (s *AuthzService) RequirePermission(ctx context.Context, action, resource string) (*domain.Principal, error) {
	p, err := s.Principal(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.HasPermission(p.Role, action, resource) {
		s.denied(p, "require_permission", fmt.Sprintf("missing permission %s on %s", action, resource))
		return nil, domain.E(domain.ErrForbidden, "insufficient permissions")
	}
	return p, nil
}

// denied records a denial to the structured log and the audit sink. Both are
// best-effort: neither can fail or block the guard that called them.
func (s *AuthzService) denied(p *domain.Principal, guard, reason string) {
	s.log.Warn().
		Str("principal_id", p.ID).
		Str("email", p.Email).
		Str("guard", guard).
		Str("reason", reason).
		Msg("authorization denied")

	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			PrincipalID: p.ID,
			Email:       p.Email,
			Guard:       guard,
			Reason:      reason,
			At:          time.Now().UTC(),
		})
	}
}
