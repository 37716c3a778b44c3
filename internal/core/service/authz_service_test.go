package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

type stubSessions struct {
	session *domain.Session
	err     error
	calls   int
}

func (s *stubSessions) GetSession(_ context.Context, _ string) (*domain.Session, error) {
	s.calls++
	return s.session, s.err
}

type stubIdentities struct {
	users map[string]*domain.User
	err   error
	calls int
}

func newStubIdentities(users ...*domain.User) *stubIdentities {
	m := make(map[string]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &stubIdentities{users: m}
}

func (r *stubIdentities) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubIdentities) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubIdentities) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = clone.Email
	}
	r.users[clone.ID] = &clone
	return &clone, nil
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func sessionFor(userID string) *domain.Session {
	return &domain.Session{
		IdentityRef: userID,
		TokenID:     "tok-" + userID,
		IssuedAt:    time.Now().UTC(),
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
}

func TestPrincipal_NoRequestScope(t *testing.T) {
	svc := NewAuthzService(&stubSessions{}, newStubIdentities(), &stubAudit{}, zerolog.Nop())

	if _, err := svc.Principal(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized outside a request scope, got %v", err)
	}
}

func TestPrincipal_NoCredentials(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewAuthzService(sessions, newStubIdentities(), &stubAudit{}, zerolog.Nop())

	ctx := WithRequestScope(context.Background(), "")
	if _, err := svc.Principal(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sessions.calls != 0 {
		t.Fatalf("session provider must not be consulted without credentials")
	}
}

func TestPrincipal_NoSession(t *testing.T) {
	svc := NewAuthzService(&stubSessions{session: nil}, newStubIdentities(), &stubAudit{}, zerolog.Nop())

	ctx := WithRequestScope(context.Background(), "some-token")
	if _, err := svc.Principal(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for missing session, got %v", err)
	}
}

func TestPrincipal_IdentityRecordMissing(t *testing.T) {
	// Session exists but the identity record was deleted afterwards: this is
	// NOT_FOUND, never a FORBIDDEN in disguise.
	svc := NewAuthzService(&stubSessions{session: sessionFor("ghost")}, newStubIdentities(), &stubAudit{}, zerolog.Nop())

	ctx := WithRequestScope(context.Background(), "token")
	_, err := svc.Principal(ctx)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("identity-missing must not be reclassified, got %v", err)
	}
}

func TestPrincipal_Success(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser}
	svc := NewAuthzService(&stubSessions{session: sessionFor("u1")}, newStubIdentities(user), &stubAudit{}, zerolog.Nop())

	ctx := WithRequestScope(context.Background(), "token")
	p, err := svc.Principal(ctx)
	if err != nil {
		t.Fatalf("Principal returned error: %v", err)
	}
	if p.ID != "u1" || p.Email != "alice@example.com" || p.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if p.Image != nil {
		t.Fatalf("absent image must resolve to nil, got %v", p.Image)
	}
}

func TestPrincipal_MemoizedWithinRequest(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin}
	sessions := &stubSessions{session: sessionFor("u1")}
	identities := newStubIdentities(user)
	svc := NewAuthzService(sessions, identities, &stubAudit{}, zerolog.Nop())

	ctx := WithRequestScope(context.Background(), "token")
	for i := 0; i < 5; i++ {
		if _, err := svc.RequireAdmin(ctx); err != nil {
			t.Fatalf("guard %d failed: %v", i, err)
		}
	}

	if sessions.calls != 1 || identities.calls != 1 {
		t.Fatalf("expected exactly one resolution per request, got sessions=%d identities=%d", sessions.calls, identities.calls)
	}
}

func TestPrincipal_FreshResolutionPerRequest(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser}
	sessions := &stubSessions{session: sessionFor("u1")}
	identities := newStubIdentities(user)
	svc := NewAuthzService(sessions, identities, &stubAudit{}, zerolog.Nop())

	ctx1 := WithRequestScope(context.Background(), "token")
	if _, err := svc.Principal(ctx1); err != nil {
		t.Fatalf("first request: %v", err)
	}

	// A role change must be visible on the very next request.
	identities.users["u1"].Role = domain.RoleAdmin

	ctx2 := WithRequestScope(context.Background(), "token")
	if _, err := svc.RequireAdmin(ctx2); err != nil {
		t.Fatalf("promotion not visible on next request: %v", err)
	}
	if identities.calls != 2 {
		t.Fatalf("expected one store lookup per request, got %d", identities.calls)
	}
}

func TestPrincipal_CancelledContext(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	svc := NewAuthzService(&stubSessions{session: sessionFor("u1")}, newStubIdentities(user), &stubAudit{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ctx = WithRequestScope(ctx, "token")
	cancel()

	if _, err := svc.RequireAdmin(ctx); err == nil {
		t.Fatal("cancellation must never resolve to allow")
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := &domain.User{ID: "a1", Email: "root@example.com", Role: domain.RoleAdmin}
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser}

	t.Run("admin allowed", func(t *testing.T) {
		svc := NewAuthzService(&stubSessions{session: sessionFor("a1")}, newStubIdentities(admin), &stubAudit{}, zerolog.Nop())
		ctx := WithRequestScope(context.Background(), "token")
		p, err := svc.RequireAdmin(ctx)
		if err != nil {
			t.Fatalf("expected allow, got %v", err)
		}
		if p.ID != "a1" {
			t.Fatalf("unexpected principal: %+v", p)
		}
	})

	t.Run("user denied with audit", func(t *testing.T) {
		audit := &stubAudit{}
		svc := NewAuthzService(&stubSessions{session: sessionFor("u1")}, newStubIdentities(user), audit, zerolog.Nop())
		ctx := WithRequestScope(context.Background(), "token")
		_, err := svc.RequireAdmin(ctx)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if len(audit.events) != 1 {
			t.Fatalf("expected one audit event, got %d", len(audit.events))
		}
		if audit.events[0].PrincipalID != "u1" || audit.events[0].Email != "alice@example.com" {
			t.Fatalf("audit event must carry principal id and email: %+v", audit.events[0])
		}
	})

	t.Run("unauthenticated propagates unchanged", func(t *testing.T) {
		svc := NewAuthzService(&stubSessions{session: nil}, newStubIdentities(), &stubAudit{}, zerolog.Nop())
		ctx := WithRequestScope(context.Background(), "token")
		_, err := svc.RequireAdmin(ctx)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if errors.Is(err, domain.ErrForbidden) {
			t.Fatal("authentication failure must not be masked as authorization failure")
		}
	})
}

func TestRequireOwnershipOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		caller  *domain.User
		ownerID string
		allowed bool
		audited bool
	}{
		{"owner allowed", &domain.User{ID: "u1", Role: domain.RoleUser}, "u1", true, false},
		{"other user denied", &domain.User{ID: "u2", Role: domain.RoleUser}, "u1", false, true},
		{"admin allowed on foreign resource", &domain.User{ID: "u2", Role: domain.RoleAdmin}, "u1", true, false},
		{"admin allowed on own resource", &domain.User{ID: "u2", Role: domain.RoleAdmin}, "u2", true, false},
		{"empty owner id denies non-admin", &domain.User{ID: "u1", Role: domain.RoleUser}, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &stubAudit{}
			svc := NewAuthzService(&stubSessions{session: sessionFor(tt.caller.ID)}, newStubIdentities(tt.caller), audit, zerolog.Nop())
			ctx := WithRequestScope(context.Background(), "token")

			_, err := svc.RequireOwnershipOrAdmin(ctx, tt.ownerID)
			if tt.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if got := len(audit.events) > 0; got != tt.audited {
				t.Fatalf("audited = %v, want %v", got, tt.audited)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	user := &domain.User{ID: "u1", Role: domain.RoleUser}

	tests := []struct {
		name     string
		caller   *domain.User
		action   string
		resource string
		allowed  bool
	}{
		{"admin deletes users", admin, domain.ActionDelete, domain.ResourceUser, true},
		{"user cannot delete users", user, domain.ActionDelete, domain.ResourceUser, false},
		{"user favorites a movie", user, domain.ActionCreate, domain.ResourceFavorite, true},
		{"empty action denied", admin, "", domain.ResourceMovie, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthzService(&stubSessions{session: sessionFor(tt.caller.ID)}, newStubIdentities(tt.caller), &stubAudit{}, zerolog.Nop())
			ctx := WithRequestScope(context.Background(), "token")

			_, err := svc.RequirePermission(ctx, tt.action, tt.resource)
			if tt.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
