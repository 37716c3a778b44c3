package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// MovieRepository persists catalog movies. Lookups return domain.ErrNotFound
// on a miss; Update and Delete report domain.ErrNotFound when the target
// record does not exist.
type MovieRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}

// GenreRepository persists catalog genres.
type GenreRepository interface {
	List(ctx context.Context) ([]domain.Genre, error)
	Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository persists user favorites. FindByID returns
// domain.ErrNotFound on a miss; Create returns domain.ErrConflict when the
// (user, movie) pair already exists.
type FavoriteRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}
