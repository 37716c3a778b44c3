package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// CreateMovieInput carries the caller-supplied fields of a new movie; the
// service fills in identity and timestamps.
type CreateMovieInput struct {
	Title     string
	Year      int
	Overview  string
	PosterURL string
	GenreIDs  []string
}

type MovieService interface {
	Get(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Create(ctx context.Context, input CreateMovieInput) (*domain.Movie, error)
	Update(ctx context.Context, id string, input CreateMovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}

type GenreService interface {
	List(ctx context.Context) ([]domain.Genre, error)
	Create(ctx context.Context, name string) (*domain.Genre, error)
	Delete(ctx context.Context, id string) error
}

type FavoriteService interface {
	ListForCaller(ctx context.Context) ([]domain.Favorite, error)
	Add(ctx context.Context, movieID string) (*domain.Favorite, error)
	Remove(ctx context.Context, favoriteID string) error
}
