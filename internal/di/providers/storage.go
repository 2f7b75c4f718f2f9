package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/logger"
	"github.com/cinemood/cinemood-server/internal/search"
	"github.com/cinemood/cinemood-server/internal/store"
)

// StoreHandle wraps the metadata cache with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the badger metadata cache.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.New(store.Options{
		Path:   cfg.Metadata.CachePath,
		TTL:    cfg.Metadata.CacheTTL,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	if st.InMemory() {
		log.Info("Metadata cache initialized in memory")
	} else {
		log.Info("Metadata cache initialized", "path", cfg.Metadata.CachePath)
	}

	return &StoreHandle{Store: st}, nil
}

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory bleve title index.
// It stays empty until the first catalog build.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{Logger: log.Logger})
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{SearchIndex: index}, nil
}
