package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Catalog stats",
		Description: "Returns the current catalog build: size per industry and load statistics",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/reload",
		Summary:     "Reload catalog",
		Description: "Rebuilds the catalog from its source files. On failure the previous build keeps serving.",
		Tags:        []string{"Catalog"},
	}, s.handleReloadCatalog)
}

// CatalogOutput wraps catalog stats for Huma.
type CatalogOutput struct {
	Body *service.CatalogStats
}

func (s *Server) handleGetCatalog(ctx context.Context, _ *struct{}) (*CatalogOutput, error) {
	stats, err := s.services.Catalog.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogOutput{Body: stats}, nil
}

func (s *Server) handleReloadCatalog(ctx context.Context, _ *struct{}) (*CatalogOutput, error) {
	if _, err := s.services.Catalog.Reload(ctx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "catalog reloaded via API")
	return s.handleGetCatalog(ctx, nil)
}
