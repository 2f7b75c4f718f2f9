package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_DownBeforeLoad(t *testing.T) {
	catalogSvc, index := newTestCatalogService(t, &fakeLoader{}, CatalogServiceOptions{})
	svc := NewHealthService(catalogSvc, nil, index, nil)

	report := svc.Check(context.Background())
	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusDown, report.Components["catalog"].Status)
	assert.Equal(t, StatusDisabled, report.Components["cache"].Status)
	assert.Equal(t, StatusDisabled, report.Components["metadata"].Status)
}

func TestHealthService_OK(t *testing.T) {
	catalogSvc, index := newTestCatalogService(t, &fakeLoader{}, CatalogServiceOptions{})
	_, err := catalogSvc.Snapshot(context.Background())
	require.NoError(t, err)

	svc := NewHealthService(catalogSvc, setupTestStore(t), index, newFakeLookup())

	report := svc.Check(context.Background())
	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, StatusOK, report.Components["search"].Status)
	assert.Equal(t, "breaker closed", report.Components["metadata"].Detail)
}

func TestHealthService_DegradedOnSampleAndOpenBreaker(t *testing.T) {
	loader := &fakeLoader{}
	loader.push(nil, missingSource())
	catalogSvc, index := newTestCatalogService(t, loader, CatalogServiceOptions{FallbackSample: true})
	_, err := catalogSvc.Snapshot(context.Background())
	require.NoError(t, err)

	lookup := newFakeLookup()
	lookup.state = "open"
	svc := NewHealthService(catalogSvc, nil, index, lookup)

	report := svc.Check(context.Background())
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusDegraded, report.Components["catalog"].Status)
	assert.Equal(t, StatusDegraded, report.Components["metadata"].Status)
}
