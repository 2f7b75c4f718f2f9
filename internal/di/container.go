// Package di provides dependency injection configuration for the CineMood server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/catalog"
	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/di/providers"
	"github.com/cinemood/cinemood-server/internal/logger"
	"github.com/cinemood/cinemood-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogLoader)
	do.Provide(injector, providers.ProvideCatalogService)

	// Metadata layer
	do.Provide(injector, providers.ProvideOMDbClient)
	do.Provide(injector, providers.ProvideMetadataService)

	// Business services
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideHealthService)

	// Workers
	do.Provide(injector, providers.ProvideSourceWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// Config and wiring errors are returned; a catalog that fails to build is
// only logged so the server can report it through /health.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*catalog.Loader](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*providers.OMDbClientHandle](injector)
	_ = do.MustInvoke[*service.MetadataService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.HealthService](injector)

	providers.WarmCatalog(injector)

	// Workers
	if _, err := do.Invoke[*providers.SourceWatcherHandle](injector); err != nil {
		return err
	}

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
