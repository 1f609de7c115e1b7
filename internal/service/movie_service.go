package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"movieapi/internal/cache"
	apperrors "movieapi/internal/errors"
	"movieapi/internal/model"
	"movieapi/internal/repository"
)

const movieCacheTTL = 10 * time.Minute

// MovieService handles movie operations.
type MovieService interface {
	CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error)
	GetMovie(ctx context.Context, id uint) (*model.Movie, error)
	ListMovies(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error)
	UpdateMovie(ctx context.Context, id uint, patch model.MoviePatch) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
}

type movieService struct {
	repo  repository.MovieRepository
	cache *cache.Client
}

// NewMovieService creates a new movie service.
func NewMovieService(repo repository.MovieRepository, cache *cache.Client) MovieService {
	return &movieService{
		repo:  repo,
		cache: cache,
	}
}

func movieCacheKey(id uint) string {
	return fmt.Sprintf("movie:%d", id)
}

func movieNotFound(id uint) error {
	return fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
}

// CreateMovie stores a new movie.
func (s *movieService) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	return movie, nil
}

// GetMovie retrieves a movie by ID with caching.
func (s *movieService) GetMovie(ctx context.Context, id uint) (*model.Movie, error) {
	var cached model.Movie
	if s.cache.GetJSON(ctx, movieCacheKey(id), &cached) {
		return &cached, nil
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, movieNotFound(id)
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	s.cache.FillJSON(ctx, movieCacheKey(id), movie, movieCacheTTL)
	return movie, nil
}

// ListMovies returns the movies matching filter. An empty result is not an error.
func (s *movieService) ListMovies(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error) {
	movies, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// UpdateMovie merges the present patch fields into the stored movie.
func (s *movieService) UpdateMovie(ctx context.Context, id uint, patch model.MoviePatch) (*model.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, movieNotFound(id)
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	patch.Apply(movie)
	if err := s.repo.Update(ctx, movie); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, movieNotFound(id)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	s.cache.Invalidate(ctx, movieCacheKey(id))
	return movie, nil
}

// DeleteMovie removes a movie and its cache entry.
func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movieNotFound(id)
		}
		return fmt.Errorf("delete movie: %w", err)
	}
	s.cache.Invalidate(ctx, movieCacheKey(id))
	return nil
}
