package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

func TestHTTPErrorHandler_Taxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation carries its reason", domain.E(domain.ErrValidation, "email is required"), http.StatusBadRequest, "email is required"},
		{"unauthorized is generic", domain.E(domain.ErrUnauthorized, "token expired at 12:00"), http.StatusUnauthorized, "authentication required"},
		{"forbidden is generic", domain.E(domain.ErrForbidden, "admin privileges required"), http.StatusForbidden, "access forbidden"},
		{"not found is generic", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"conflict carries its reason", domain.E(domain.ErrConflict, "email already authorized"), http.StatusConflict, "email already authorized"},
		{"internal is masked", domain.E(domain.ErrInternal, "mongo timeout on users"), http.StatusInternalServerError, "internal server error"},
		{"unknown error is masked", errors.New("redis: connection refused"), http.StatusInternalServerError, "internal server error"},
		{"echo errors pass through", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON envelope: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("message = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Response().WriteHeader(http.StatusOK)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
