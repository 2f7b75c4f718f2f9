package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cinemood/cinemood-server/internal/domain"
	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
	"github.com/cinemood/cinemood-server/internal/recommend"
)

// Recommendation is a catalog movie with optional display metadata.
type Recommendation struct {
	domain.Movie
	Details *omdb.Details `json:"details,omitempty"`
}

// RecommendationOptions configures a RecommendationService.
type RecommendationOptions struct {
	MaxCount    int // larger requests are clamped
	Concurrency int // parallel metadata lookups when enriching
}

// RecommendationService answers mood, popular and random queries against
// the current catalog build.
type RecommendationService struct {
	catalog  *CatalogService
	metadata *MetadataService // optional
	opts     RecommendationOptions
	logger   *slog.Logger
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(
	catalog *CatalogService,
	metadata *MetadataService,
	opts RecommendationOptions,
	logger *slog.Logger,
) *RecommendationService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationService{
		catalog:  catalog,
		metadata: metadata,
		opts:     opts,
		logger:   logger,
	}
}

// ByMood returns up to n movies for mood. Unknown moods fall back to popular.
func (s *RecommendationService) ByMood(ctx context.Context, mood string, n int, scope domain.Scope, enrich bool) ([]Recommendation, error) {
	return s.run(ctx, enrich, func(r *recommend.Recommender) []domain.Movie {
		return r.ByMood(mood, s.clamp(n), scope)
	})
}

// Popular returns up to n of the highest scored movies.
func (s *RecommendationService) Popular(ctx context.Context, n int, scope domain.Scope, enrich bool) ([]Recommendation, error) {
	return s.run(ctx, enrich, func(r *recommend.Recommender) []domain.Movie {
		return r.Popular(s.clamp(n), scope)
	})
}

// Random returns up to n distinct movies chosen uniformly.
func (s *RecommendationService) Random(ctx context.Context, n int, scope domain.Scope, enrich bool) ([]Recommendation, error) {
	return s.run(ctx, enrich, func(r *recommend.Recommender) []domain.Movie {
		return r.Random(s.clamp(n), scope)
	})
}

// Movie returns a single movie by catalog ID.
func (s *RecommendationService) Movie(ctx context.Context, movieID int, enrich bool) (*Recommendation, error) {
	rec, err := s.catalog.Recommender(ctx)
	if err != nil {
		return nil, err
	}

	m, ok := rec.Movie(movieID)
	if !ok {
		return nil, domainerrors.NotFoundf("movie %d not found", movieID)
	}

	out := []Recommendation{{Movie: m}}
	if enrich {
		s.enrich(ctx, out)
	}
	return &out[0], nil
}

func (s *RecommendationService) run(ctx context.Context, enrich bool, query func(*recommend.Recommender) []domain.Movie) ([]Recommendation, error) {
	rec, err := s.catalog.Recommender(ctx)
	if err != nil {
		return nil, err
	}

	movies := query(rec)
	out := make([]Recommendation, len(movies))
	for i := range movies {
		out[i].Movie = movies[i]
	}

	if enrich {
		s.enrich(ctx, out)
	}
	return out, nil
}

func (s *RecommendationService) clamp(n int) int {
	if s.opts.MaxCount > 0 && n > s.opts.MaxCount {
		return s.opts.MaxCount
	}
	return n
}

// enrich attaches details to every entry in place. Lookups never fail
// here: errors become placeholder details so no movie is dropped.
func (s *RecommendationService) enrich(ctx context.Context, recs []Recommendation) {
	if len(recs) == 0 {
		return
	}
	if s.metadata == nil {
		for i := range recs {
			recs[i].Details = omdb.Placeholder(recs[i].Title)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i := range recs {
		g.Go(func() error {
			recs[i].Details = s.metadata.Details(ctx, recs[i].Title)
			return nil
		})
	}
	_ = g.Wait()
}
