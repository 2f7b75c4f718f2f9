package service

import (
	"context"
	"log/slog"

	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/search"
)

// SearchService runs title searches over the current catalog build.
type SearchService struct {
	index   *search.SearchIndex
	catalog *CatalogService
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, catalog *CatalogService, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		index:   index,
		catalog: catalog,
		logger:  logger,
	}
}

// Search makes sure the catalog is built, so the index is populated, then
// runs the query.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if _, err := s.catalog.Snapshot(ctx); err != nil {
		return nil, err
	}

	res, err := s.index.Search(ctx, params)
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", params.Query)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}
	return res, nil
}
