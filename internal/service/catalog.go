package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cinemood/cinemood-server/internal/catalog"
	"github.com/cinemood/cinemood-server/internal/domain"
	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/recommend"
	"github.com/cinemood/cinemood-server/internal/search"
	"github.com/cinemood/cinemood-server/internal/watcher"
)

// CatalogLoader builds a catalog from its sources.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogSnapshot is one immutable build: the catalog and the recommender
// constructed over it. Readers share it without locking.
type CatalogSnapshot struct {
	Catalog     *catalog.Catalog
	Recommender *recommend.Recommender
	Sample      bool // built-in sample served because the sources were missing
}

// CatalogStats describes the current build.
type CatalogStats struct {
	BuildID         string                  `json:"build_id"`
	BuiltAt         time.Time               `json:"built_at"`
	Total           int                     `json:"total"`
	ByIndustry      map[domain.Industry]int `json:"by_industry"`
	Load            catalog.LoadStats       `json:"load"`
	Sample          bool                    `json:"sample"`
	LastReloadError string                  `json:"last_reload_error,omitempty"`
	LastReloadAt    *time.Time              `json:"last_reload_at,omitempty"`
}

// CatalogServiceOptions configures a CatalogService.
type CatalogServiceOptions struct {
	// FallbackSample serves catalog.Sample when a source file is missing
	// and no earlier build exists.
	FallbackSample bool

	// RecommendOptions are passed to every recommender built.
	RecommendOptions []recommend.Option
}

// CatalogService builds the catalog once and shares it read-only until
// an explicit Reload.
type CatalogService struct {
	loader CatalogLoader
	index  *search.SearchIndex // optional
	logger *slog.Logger
	opts   CatalogServiceOptions

	mu      sync.Mutex // serializes builds
	flight  singleflight.Group
	current atomic.Pointer[CatalogSnapshot]

	reloadMu      sync.RWMutex
	lastReloadErr error
	lastReloadAt  time.Time
}

// NewCatalogService creates a catalog service. Nothing is loaded until the
// first call to Snapshot or Reload.
func NewCatalogService(loader CatalogLoader, index *search.SearchIndex, opts CatalogServiceOptions, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		loader: loader,
		index:  index,
		logger: logger,
		opts:   opts,
	}
}

// Snapshot returns the current build, building it on first use.
// Concurrent first callers share one build.
func (s *CatalogService) Snapshot(ctx context.Context) (*CatalogSnapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	v, err, _ := s.flight.Do("build", func() (any, error) {
		return s.build(context.WithoutCancel(ctx), false)
	})
	if err != nil {
		return nil, err
	}
	return v.(*CatalogSnapshot), nil
}

// Current returns the current build without triggering one. It is nil
// before the first successful build.
func (s *CatalogService) Current() *CatalogSnapshot {
	return s.current.Load()
}

// Reload rebuilds from the sources. On failure the previous build stays
// in service and the error is returned.
func (s *CatalogService) Reload(ctx context.Context) (*CatalogSnapshot, error) {
	snap, err := s.build(ctx, true)

	s.reloadMu.Lock()
	s.lastReloadErr = err
	s.lastReloadAt = time.Now()
	s.reloadMu.Unlock()

	return snap, err
}

// Recommender returns the recommender of the current build.
func (s *CatalogService) Recommender(ctx context.Context) (*recommend.Recommender, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Recommender, nil
}

// Stats describes the current build.
func (s *CatalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{
		BuildID:    snap.Catalog.BuildID(),
		BuiltAt:    snap.Catalog.BuiltAt(),
		Total:      snap.Catalog.Len(),
		ByIndustry: snap.Catalog.CountBy(),
		Load:       snap.Catalog.Stats(),
		Sample:     snap.Sample,
	}

	s.reloadMu.RLock()
	if !s.lastReloadAt.IsZero() {
		at := s.lastReloadAt
		stats.LastReloadAt = &at
	}
	if s.lastReloadErr != nil {
		stats.LastReloadError = s.lastReloadErr.Error()
	}
	s.reloadMu.RUnlock()

	return stats, nil
}

// WatchSources reloads the catalog whenever a watched source settles.
// It blocks until ctx is cancelled or the events channel closes.
func (s *CatalogService) WatchSources(ctx context.Context, events <-chan watcher.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.logger.Info("catalog source changed", "path", ev.Path, "type", ev.Type.String())
			if _, err := s.Reload(ctx); err != nil {
				s.logger.Warn("catalog reload after source change failed", "error", err)
			}
		}
	}
}

func (s *CatalogService) build(ctx context.Context, reload bool) (*CatalogSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !reload {
		if snap := s.current.Load(); snap != nil {
			return snap, nil
		}
	}

	start := time.Now()
	cat, err := s.loader.Load(ctx)
	sample := false
	if err != nil {
		if prev := s.current.Load(); prev != nil {
			s.logger.Warn("catalog reload failed, keeping previous build",
				"error", err,
				"build_id", prev.Catalog.BuildID(),
			)
			return nil, wrapLoadError(err)
		}
		if !s.opts.FallbackSample || !errors.Is(err, catalog.ErrMissingSource) {
			s.logger.Error("catalog build failed", "error", err)
			return nil, wrapLoadError(err)
		}
		s.logger.Warn("catalog source missing, serving sample catalog", "error", err)
		cat, sample = catalog.Sample(), true
	}

	snap := &CatalogSnapshot{
		Catalog:     cat,
		Recommender: recommend.New(cat, s.opts.RecommendOptions...),
		Sample:      sample,
	}

	if s.index != nil {
		if err := s.index.Rebuild(cat.Movies()); err != nil {
			s.logger.Warn("search index rebuild failed", "error", err)
		}
	}

	s.current.Store(snap)
	s.logger.Info("catalog ready",
		"build_id", cat.BuildID(),
		"movies", cat.Len(),
		"sample", sample,
		"duration", time.Since(start),
	)
	return snap, nil
}

func wrapLoadError(err error) error {
	if errors.Is(err, catalog.ErrMissingSource) {
		return domainerrors.Wrap(err, domainerrors.CodeMissingSource, "catalog source missing")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load catalog")
}
