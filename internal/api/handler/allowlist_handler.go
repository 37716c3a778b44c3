package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// AllowlistHandler manages the registration email allow-list. All routes are
// admin-gated by the guard middleware in the router.
type AllowlistHandler struct {
	allowlist ports.AllowlistService
}

func NewAllowlistHandler(allowlist ports.AllowlistService) *AllowlistHandler {
	return &AllowlistHandler{allowlist: allowlist}
}

type allowlistRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// List returns every authorized email.
//
// @Summary      List authorized emails
// @Tags         allowlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AllowlistEntry
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/allowlist [get]
func (h *AllowlistHandler) List(c echo.Context) error {
	entries, err := h.allowlist.List(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AllowlistEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Add authorizes a new email for registration.
//
// @Summary      Authorize an email
// @Tags         allowlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      allowlistRequest  true  "Email to authorize"
// @Success      201   {object}  domain.AllowlistEntry
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/allowlist [post]
func (h *AllowlistHandler) Add(c echo.Context) error {
	var req allowlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.allowlist.Add(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Remove de-authorizes an email.
//
// @Summary      Remove an authorized email
// @Tags         allowlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      allowlistRequest  true  "Email to remove"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/allowlist [delete]
func (h *AllowlistHandler) Remove(c echo.Context) error {
	var req allowlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.allowlist.Remove(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
