package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/catalog-api/internal/core/service"
)

// Session attaches a fresh authorization request scope to every request,
// carrying whatever bearer credentials the caller presented (possibly none).
// Principal resolution is lazy: it happens on the first guard evaluation and
// is memoized in the scope, so public routes pay nothing and a request
// crossing several guarded operations resolves exactly once. The scope dies
// with the request.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			creds := bearerToken(c.Request())
			ctx := service.WithRequestScope(c.Request().Context(), creds)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Anything else (absent, wrong scheme, malformed) yields empty
// credentials, which resolve to unauthenticated later.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
