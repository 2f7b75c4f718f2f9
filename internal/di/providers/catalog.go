package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/catalog"
	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/logger"
	"github.com/cinemood/cinemood-server/internal/recommend"
	"github.com/cinemood/cinemood-server/internal/service"
	"github.com/cinemood/cinemood-server/internal/watcher"
)

// ProvideCatalogLoader provides the two-source catalog loader.
func ProvideCatalogLoader(i do.Injector) (*catalog.Loader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	c := cfg.Catalog
	return catalog.NewLoader(catalog.Options{
		GeneralPath:  c.GeneralPath,
		RegionalPath: c.RegionalPath,
		GeneralColumns: catalog.Columns{
			Title: c.GeneralTitleColumns,
			Genre: c.GeneralGenreColumns,
			Score: c.GeneralScoreColumns,
		},
		RegionalColumns: catalog.Columns{
			Title: c.RegionalTitleColumns,
			Genre: c.RegionalGenreColumns,
			Score: c.RegionalScoreColumns,
		},
		Fallback: catalog.ScoreFallback{
			Policy: catalog.ScorePolicy(c.ScorePolicy),
			Min:    c.FallbackMin,
			Max:    c.FallbackMax,
		},
		Logger: log.WithComponent("catalog"),
	}), nil
}

// ProvideCatalogService provides the shared catalog snapshot holder.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	loader := do.MustInvoke[*catalog.Loader](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	recLogger := log.WithComponent("recommend")
	return service.NewCatalogService(loader, indexHandle.SearchIndex, service.CatalogServiceOptions{
		FallbackSample: cfg.Catalog.FallbackSample,
		RecommendOptions: []recommend.Option{
			recommend.WithLogger(recLogger),
			recommend.WithSeed(cfg.Recommend.Seed),
			recommend.WithBackfillRange(cfg.Recommend.BackfillMin, cfg.Recommend.BackfillMax),
		},
	}, log.WithComponent("catalog")), nil
}

// SourceWatcherHandle wraps the source file watcher with shutdown capability.
// Watcher is nil when watching is disabled.
type SourceWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SourceWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideSourceWatcher starts watching both catalog sources when enabled.
// Changes trigger a catalog reload.
func ProvideSourceWatcher(i do.Injector) (*SourceWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	if !cfg.Catalog.Watch {
		log.Info("Catalog source watching disabled by configuration")
		return &SourceWatcherHandle{}, nil
	}

	w, err := watcher.New(log.WithComponent("watcher"), watcher.Options{})
	if err != nil {
		return nil, err
	}

	for _, path := range []string{cfg.Catalog.GeneralPath, cfg.Catalog.RegionalPath} {
		if err := w.WatchFile(path); err != nil {
			_ = w.Stop()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Source watcher stopped", "error", err)
		}
	}()
	go catalogService.WatchSources(ctx, w.Events())
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				log.Warn("Source watcher error", "error", err)
			}
		}
	}()

	log.Info("Watching catalog sources",
		"general", cfg.Catalog.GeneralPath,
		"regional", cfg.Catalog.RegionalPath,
	)

	return &SourceWatcherHandle{Watcher: w, cancel: cancel}, nil
}

// WarmCatalog builds the catalog once at startup. A failure is logged and
// left for the first request or an explicit reload to surface.
func WarmCatalog(i do.Injector) {
	catalogService := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	snap, err := catalogService.Snapshot(context.Background())
	if err != nil {
		log.Warn("Initial catalog build failed", "error", err)
		return
	}

	log.Info("Catalog ready",
		"build_id", snap.Catalog.BuildID(),
		"movies", snap.Catalog.Len(),
		"sample", snap.Sample,
	)
}
