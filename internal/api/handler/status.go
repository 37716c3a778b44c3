package handler

import (
	"errors"
	"net/http"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// statusOf maps the closed authorization taxonomy to HTTP status codes, for
// handlers that render their own error envelope (the auth flows, whose
// messages carry caller-actionable reasons). Everything else defers to the
// central error handler.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
