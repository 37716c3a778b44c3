package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// MovieHandler exposes catalog movie CRUD. Reads are public; writes are
// wrapped by permission guards in the router.
type MovieHandler struct {
	movies ports.MovieService
}

func NewMovieHandler(movies ports.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

type movieRequest struct {
	Title     string   `json:"title" validate:"required,max=300"`
	Year      int      `json:"year" validate:"required,gte=1888"`
	Overview  string   `json:"overview" validate:"omitempty,max=2000"`
	PosterURL string   `json:"poster_url" validate:"omitempty,url"`
	GenreIDs  []string `json:"genre_ids"`
}

func (r movieRequest) toInput() ports.CreateMovieInput {
	return ports.CreateMovieInput{
		Title:     r.Title,
		Year:      r.Year,
		Overview:  r.Overview,
		PosterURL: r.PosterURL,
		GenreIDs:  r.GenreIDs,
	}
}

// List handles GET /v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.movies.List(c.Request().Context())
	if err != nil {
		return err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.movies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Create handles POST /v1/movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movies.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, movie)
}

// Update handles PUT /v1/movies/:id.
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movies.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete handles DELETE /v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.movies.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GenreHandler exposes the genre vocabulary. Reads are public; mutations are
// admin-gated in the router.
type GenreHandler struct {
	genres ports.GenreService
}

func NewGenreHandler(genres ports.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

type genreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *GenreHandler) List(c echo.Context) error {
	genres, err := h.genres.List(c.Request().Context())
	if err != nil {
		return err
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	return c.JSON(http.StatusOK, genres)
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req genreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.genres.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, genre)
}

func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.genres.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
