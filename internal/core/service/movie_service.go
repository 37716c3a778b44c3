package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
)

// MovieService is thin CRUD glue over the movie store. Write operations are
// guarded at the route level; the service only needs the principal to stamp
// provenance (a second resolution is free thanks to the request scope).
type MovieService struct {
	repo  ports.MovieRepository
	authz ports.Authorizer
	log   zerolog.Logger
}

func NewMovieService(repo ports.MovieRepository, authz ports.Authorizer, log zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, authz: authz, log: log}
}

func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) List(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.List(ctx)
}

func (s *MovieService) Create(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
	p, err := s.authz.Principal(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		Title:     input.Title,
		Year:      input.Year,
		Overview:  input.Overview,
		PosterURL: input.PosterURL,
		GenreIDs:  input.GenreIDs,
		CreatedBy: p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("movie_id", created.ID).Str("title", created.Title).Str("created_by", p.ID).Msg("movie created")
	return created, nil
}

func (s *MovieService) Update(ctx context.Context, id string, input ports.CreateMovieInput) (*domain.Movie, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Year = input.Year
	existing.Overview = input.Overview
	existing.PosterURL = input.PosterURL
	existing.GenreIDs = input.GenreIDs
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GenreService manages the genre vocabulary. Mutations are admin-gated at
// the route level.
type GenreService struct {
	repo ports.GenreRepository
	log  zerolog.Logger
}

func NewGenreService(repo ports.GenreRepository, log zerolog.Logger) *GenreService {
	return &GenreService{repo: repo, log: log}
}

func (s *GenreService) List(ctx context.Context) ([]domain.Genre, error) {
	return s.repo.List(ctx)
}

func (s *GenreService) Create(ctx context.Context, name string) (*domain.Genre, error) {
	return s.repo.Create(ctx, &domain.Genre{Name: name})
}

func (s *GenreService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
