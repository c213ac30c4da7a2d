package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// ErrNoCategories is returned by List when the store holds no categories.
var ErrNoCategories = errors.New("no categories")

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_category_cache_lookups_total",
	Help: "Category cache lookups by result.",
}, []string{"result"})

type repository interface {
	List(ctx context.Context) ([]db.Category, error)
}

// Service serves categories, reading through the cache.
type Service struct {
	repo   repository
	cache  Cache
	logger zerolog.Logger
}

func NewService(repo repository, cache Cache, logger zerolog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "category").Logger(),
	}
}

// List returns all categories ordered by label, or ErrNoCategories.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

// Map returns the {id: type} mapping. An empty store yields an empty map.
func (s *Service) Map(ctx context.Context) (Map, error) {
	categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return MapOf(categories), nil
}

// Refresh reloads categories from the store into the cache.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	categories, err := s.fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			return 0, fmt.Errorf("cache categories: %w", err)
		}
	}
	return len(categories), nil
}

func (s *Service) load(ctx context.Context) ([]Category, error) {
	cached, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("category cache read failed")
	case cached != nil:
		cacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		cacheLookups.WithLabelValues("miss").Inc()
	}

	categories, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	// an empty store is not cached so a later seed is picked up at once
	if len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *Service) fetch(ctx context.Context) ([]Category, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{ID: int(row.ID), Type: row.Type})
	}
	return categories, nil
}
