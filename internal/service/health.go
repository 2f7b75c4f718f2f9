package service

import (
	"context"
	"time"

	"github.com/cinemood/cinemood-server/internal/search"
	"github.com/cinemood/cinemood-server/internal/store"
)

// Health statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// ComponentHealth is the status of one dependency.
type ComponentHealth struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthReport aggregates component health.
type HealthReport struct {
	Status     string                     `json:"status"`
	Uptime     string                     `json:"uptime"`
	Components map[string]ComponentHealth `json:"components"`
}

type breakerState interface {
	State() string
}

// HealthService reports on the catalog, cache, search index and metadata client.
type HealthService struct {
	catalog  *CatalogService
	store    *store.Store        // optional
	index    *search.SearchIndex // optional
	metadata TitleLookup         // optional
	started  time.Time
}

// NewHealthService creates a health service.
func NewHealthService(catalog *CatalogService, st *store.Store, index *search.SearchIndex, metadata TitleLookup) *HealthService {
	return &HealthService{
		catalog:  catalog,
		store:    st,
		index:    index,
		metadata: metadata,
		started:  time.Now(),
	}
}

// Check builds a report. Only a missing catalog makes the service down;
// the other components degrade it.
func (s *HealthService) Check(_ context.Context) *HealthReport {
	report := &HealthReport{
		Status:     StatusOK,
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Components: make(map[string]ComponentHealth, 4),
	}

	degrade := func(name string, h ComponentHealth) {
		report.Components[name] = h
		if h.Status == StatusDegraded && report.Status == StatusOK {
			report.Status = StatusDegraded
		}
	}

	switch snap := s.catalog.Current(); {
	case snap == nil:
		report.Components["catalog"] = ComponentHealth{Status: StatusDown, Detail: "not loaded"}
		report.Status = StatusDown
	case snap.Sample:
		degrade("catalog", ComponentHealth{Status: StatusDegraded, Detail: "serving sample catalog"})
	default:
		report.Components["catalog"] = ComponentHealth{Status: StatusOK, Detail: snap.Catalog.BuildID()}
	}

	switch {
	case s.store == nil:
		report.Components["cache"] = ComponentHealth{Status: StatusDisabled}
	case !s.store.Healthy():
		degrade("cache", ComponentHealth{Status: StatusDegraded, Detail: "closed"})
	case s.store.InMemory():
		report.Components["cache"] = ComponentHealth{Status: StatusOK, Detail: "in-memory"}
	default:
		report.Components["cache"] = ComponentHealth{Status: StatusOK}
	}

	if s.index == nil {
		report.Components["search"] = ComponentHealth{Status: StatusDisabled}
	} else if _, err := s.index.DocumentCount(); err != nil {
		degrade("search", ComponentHealth{Status: StatusDegraded, Detail: err.Error()})
	} else {
		report.Components["search"] = ComponentHealth{Status: StatusOK}
	}

	switch {
	case s.metadata == nil || !s.metadata.Enabled():
		report.Components["metadata"] = ComponentHealth{Status: StatusDisabled}
	default:
		h := ComponentHealth{Status: StatusOK}
		if b, ok := s.metadata.(breakerState); ok {
			h.Detail = "breaker " + b.State()
			if b.State() == "open" {
				h.Status = StatusDegraded
			}
		}
		degrade("metadata", h)
	}

	return report
}
