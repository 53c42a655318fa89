package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// ListCache stores the full category list (implemented by the Redis-backed Cache).
// Get returns nil, nil on a miss.
type ListCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// Service serves the read-only category table.
type Service struct {
	repo   *repository.CategoryRepository
	cache  ListCache
	logger zerolog.Logger
}

// NewService wires the repository and an optional cache; cache may be nil.
func NewService(repo *repository.CategoryRepository, cache ListCache, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "category_service").Logger(),
	}
}

// List returns all categories ordered by ascending id.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, fromRow(row))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// Get returns one category, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id < 1 {
		return Category{}, ErrNotFound
	}
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	return fromRow(row), nil
}
