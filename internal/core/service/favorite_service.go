package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// FavoriteService manages a caller's favorites. The caller's identity comes
// from the authorizer, never from request payloads; removal of someone
// else's favorite requires ownership or the admin role, checked against the
// loaded record.
type FavoriteService struct {
	favorites ports.FavoriteRepository
	movies    ports.MovieRepository
	authz     ports.Authorizer
	log       zerolog.Logger
}

func NewFavoriteService(favorites ports.FavoriteRepository, movies ports.MovieRepository, authz ports.Authorizer, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, movies: movies, authz: authz, log: log}
}

func (s *FavoriteService) ListForCaller(ctx context.Context) ([]domain.Favorite, error) {
	p, err := s.authz.Principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListByUser(ctx, p.ID)
}

func (s *FavoriteService) Add(ctx context.Context, movieID string) (*domain.Favorite, error) {
	p, err := s.authz.RequirePermission(ctx, domain.ActionCreate, domain.ResourceFavorite)
	if err != nil {
		return nil, err
	}

	// The movie must exist; a dangling favorite is useless.
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		UserID:    p.ID,
		MovieID:   movieID,
		CreatedAt: time.Now().UTC(),
	}
	return s.favorites.Create(ctx, fav)
}

func (s *FavoriteService) Remove(ctx context.Context, favoriteID string) error {
	fav, err := s.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return err
	}

	if _, err := s.authz.RequireOwnershipOrAdmin(ctx, fav.UserID); err != nil {
		return err
	}

	return s.favorites.Delete(ctx, favoriteID)
}
