package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/logger"
	"github.com/cinemood/cinemood-server/internal/service"
)

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	metadataService := do.MustInvoke[*service.MetadataService](i)

	return service.NewRecommendationService(catalogService, metadataService, service.RecommendationOptions{
		MaxCount:    cfg.Recommend.MaxCount,
		Concurrency: cfg.Metadata.Concurrency,
	}, log.WithComponent("recommendations")), nil
}

// ProvideSearchService provides the catalog search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	return service.NewSearchService(indexHandle.SearchIndex, catalogService, log.WithComponent("search")), nil
}

// ProvideHealthService provides the health reporter.
func ProvideHealthService(i do.Injector) (*service.HealthService, error) {
	catalogService := do.MustInvoke[*service.CatalogService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	clientHandle := do.MustInvoke[*OMDbClientHandle](i)

	return service.NewHealthService(catalogService, storeHandle.Store, indexHandle.SearchIndex, clientHandle.Client), nil
}
