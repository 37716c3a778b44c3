package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// FavoriteHandler exposes the caller's favorites. Identity and ownership are
// enforced in the service layer against the resolved principal; the handler
// never reads a user id from the request.
type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type favoriteRequest struct {
	MovieID string `json:"movie_id" validate:"required"`
}

// List handles GET /v1/favorites, returning the caller's own favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	favorites, err := h.favorites.ListForCaller(c.Request().Context())
	if err != nil {
		return err
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return c.JSON(http.StatusOK, favorites)
}

// Add handles POST /v1/favorites.
//
// @Summary      Favorite a movie
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      favoriteRequest  true  "Movie to favorite"
// @Success      201   {object}  domain.Favorite
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	favorite, err := h.favorites.Add(c.Request().Context(), req.MovieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

// Remove handles DELETE /v1/favorites/:id. Removing someone else's favorite
// requires the admin role; the service checks ownership against the loaded
// record.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	if err := h.favorites.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
