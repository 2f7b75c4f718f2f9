package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemood/cinemood-server/internal/domain"
	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/search"
)

func TestSearchService_BuildsCatalogOnFirstSearch(t *testing.T) {
	loader := &fakeLoader{}
	catalogSvc, index := newTestCatalogService(t, loader, CatalogServiceOptions{})
	svc := NewSearchService(index, catalogSvc, testLogger())

	res, err := svc.Search(context.Background(), search.SearchParams{Query: "notebook"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), loader.calls.Load())
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "The Notebook", res.Hits[0].Title)
}

func TestSearchService_ScopeFilter(t *testing.T) {
	catalogSvc, index := newTestCatalogService(t, &fakeLoader{}, CatalogServiceOptions{})
	svc := NewSearchService(index, catalogSvc, testLogger())

	res, err := svc.Search(context.Background(), search.SearchParams{Scope: domain.ScopeRegional})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), res.Total)
	for _, hit := range res.Hits {
		assert.Equal(t, domain.IndustryRegional, hit.Industry)
	}
}

func TestSearchService_MissingSource(t *testing.T) {
	loader := &fakeLoader{}
	loader.push(nil, missingSource())
	catalogSvc, index := newTestCatalogService(t, loader, CatalogServiceOptions{})
	svc := NewSearchService(index, catalogSvc, testLogger())

	_, err := svc.Search(context.Background(), search.SearchParams{Query: "inception"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingSource))
}
