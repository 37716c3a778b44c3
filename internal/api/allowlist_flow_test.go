package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/api/handler"
	"github.com/cinevault/catalog-api/internal/api/middleware"
	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/service"
)

// Full slice of the admin allow-list surface: session middleware, admin
// guard, handler, real service and an in-memory store, with the central
// error handler translating the taxonomy. NewRouter itself is not used here
// because its prometheus middleware registers collectors in the default
// registry.

type memAllowlistRepo struct {
	entries map[string]domain.AllowlistEntry
}

func (r *memAllowlistRepo) FindByEmail(_ context.Context, email string) (*domain.AllowlistEntry, error) {
	e, ok := r.entries[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *memAllowlistRepo) Create(_ context.Context, email string) (*domain.AllowlistEntry, error) {
	if _, ok := r.entries[email]; ok {
		return nil, domain.ErrConflict
	}
	e := domain.AllowlistEntry{ID: email, Email: email, CreatedAt: time.Now().UTC()}
	r.entries[email] = e
	return &e, nil
}

func (r *memAllowlistRepo) Delete(_ context.Context, email string) error {
	if _, ok := r.entries[email]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, email)
	return nil
}

func (r *memAllowlistRepo) List(_ context.Context) ([]domain.AllowlistEntry, error) {
	out := make([]domain.AllowlistEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

type tokenSessions struct {
	byToken map[string]*domain.Session
}

func (s *tokenSessions) GetSession(_ context.Context, credentials string) (*domain.Session, error) {
	return s.byToken[credentials], nil
}

type memIdentities struct {
	users map[string]*domain.User
}

func (r *memIdentities) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memIdentities) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (r *memIdentities) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

type dropAudit struct{}

func (dropAudit) Record(domain.AuditEvent) {}

func newAllowlistServer(t *testing.T) *echo.Echo {
	t.Helper()

	sessions := &tokenSessions{byToken: map[string]*domain.Session{
		"admin-token": {IdentityRef: "a1", TokenID: "t-a1"},
		"user-token":  {IdentityRef: "u1", TokenID: "t-u1"},
	}}
	identities := &memIdentities{users: map[string]*domain.User{
		"a1": {ID: "a1", Email: "root@example.com", Role: domain.RoleAdmin},
		"u1": {ID: "u1", Email: "alice@example.com", Role: domain.RoleUser},
	}}

	authz := service.NewAuthzService(sessions, identities, dropAudit{}, zerolog.Nop())
	allowlist := service.NewAllowlistService(&memAllowlistRepo{entries: map[string]domain.AllowlistEntry{}}, zerolog.Nop())
	h := handler.NewAllowlistHandler(allowlist)

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.Use(middleware.Session())

	admin := e.Group("/v1/admin", middleware.Guard("admin", authz.RequireAdmin))
	admin.GET("/allowlist", h.List)
	admin.POST("/allowlist", h.Add)
	admin.DELETE("/allowlist", h.Remove)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAllowlistAdminFlow(t *testing.T) {
	e := newAllowlistServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/admin/allowlist", "admin-token", `{"email":"New@Example.COM"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "new@example.com") {
		t.Fatalf("entry must be stored normalized, got %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/v1/admin/allowlist", "admin-token", `{"email":"new@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate add: status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email already authorized") {
		t.Fatalf("duplicate add must say already authorized, got %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/admin/allowlist", "admin-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "new@example.com") {
		t.Fatalf("list must contain the added email, got %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodDelete, "/v1/admin/allowlist", "admin-token", `{"email":"ghost@example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove unknown: status = %d, want 404", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/v1/admin/allowlist", "admin-token", `{"email":"NEW@example.com"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove: status = %d, want 204", rec.Code)
	}
}

func TestAllowlistAdminFlow_AccessControl(t *testing.T) {
	e := newAllowlistServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/admin/allowlist", "user-token", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "access forbidden") {
		t.Fatalf("denial must be generic, got %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/admin/allowlist", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: status = %d, want 401", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/admin/allowlist", "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token: status = %d, want 401", rec.Code)
	}
}
