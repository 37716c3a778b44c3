package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/catalog-api/internal/api/metrics"
	"github.com/cinevault/catalog-api/internal/core/domain"
)

// GuardFunc evaluates an authorization condition against the current request
// context and returns the resolved principal on allow. The failure contract
// is the closed taxonomy in the domain package.
type GuardFunc func(ctx context.Context) (*domain.Principal, error)

// Guard wraps a route (or group) with an authorization guard. The wrapped
// handler runs only after the guard allows; on denial the guard's error is
// returned untouched for the central error handler to translate, so a write
// can never happen before authorization is confirmed.
func Guard(name string, guard GuardFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return WithGuard(name, guard, next)
	}
}

// WithGuard composes a guard with a single handler. Exposed separately for
// routes that mix guarded and unguarded methods on one path.
func WithGuard(name string, guard GuardFunc, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, err := guard(c.Request().Context())
		if err != nil {
			metrics.AuthzDecisionsTotal.WithLabelValues(name, decisionLabel(err)).Inc()
			return err
		}
		metrics.AuthzDecisionsTotal.WithLabelValues(name, "allow").Inc()
		return next(c)
	}
}

// decisionLabel buckets a guard failure for metrics without leaking detail.
func decisionLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "deny"
	case errors.Is(err, domain.ErrNotFound):
		return "identity_missing"
	default:
		return "error"
	}
}
