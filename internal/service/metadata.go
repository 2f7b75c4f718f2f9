package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
	"github.com/cinemood/cinemood-server/internal/normalize"
	"github.com/cinemood/cinemood-server/internal/store"
)

// TitleLookup fetches display metadata for a title.
type TitleLookup interface {
	LookupTitle(ctx context.Context, title string) (*omdb.Details, error)
	Enabled() bool
}

// MetadataService orchestrates metadata fetching with caching.
type MetadataService struct {
	client TitleLookup
	store  *store.Store // optional
	flight singleflight.Group
	logger *slog.Logger
}

// NewMetadataService creates a new metadata service. A nil store disables caching.
func NewMetadataService(client TitleLookup, store *store.Store, logger *slog.Logger) *MetadataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataService{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Enabled reports whether lookups can reach the upstream API.
func (s *MetadataService) Enabled() bool {
	return s.client != nil && s.client.Enabled()
}

// Lookup returns details for a title, using the cache when fresh.
// Confirmed misses are cached too and reported as NOT_FOUND.
func (s *MetadataService) Lookup(ctx context.Context, title string) (*omdb.Details, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainerrors.Validation("title is required")
	}

	if s.store != nil {
		cached, err := s.store.GetCachedMetadata(ctx, title)
		if err != nil {
			s.logger.Warn("cache lookup failed", "error", err, "title", title)
		}
		if cached != nil {
			s.logger.Debug("cache hit for metadata", "title", title, "age", cached.FetchedAt)
			if cached.NotFound {
				return nil, domainerrors.NotFoundf("no metadata for %q", title)
			}
			return cached.Details, nil
		}
	}

	if !s.Enabled() {
		return nil, domainerrors.Unavailable("metadata lookups are disabled")
	}

	v, err, shared := s.flight.Do(normalize.TitleKey(title), func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), title)
	})
	if shared {
		s.logger.Debug("joined in-flight metadata lookup", "title", title)
	}
	if err != nil {
		return nil, translateMetadataError(title, err)
	}
	return v.(*omdb.Details), nil
}

// Details returns metadata for display and never fails: any error yields
// placeholder details for the title.
func (s *MetadataService) Details(ctx context.Context, title string) *omdb.Details {
	d, err := s.Lookup(ctx, title)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) && !errors.Is(err, domainerrors.ErrUnavailable) {
			s.logger.Warn("metadata lookup failed", "error", err, "title", title)
		}
		return omdb.Placeholder(title)
	}
	return d
}

// Refresh drops the cached entry for title and fetches it again.
func (s *MetadataService) Refresh(ctx context.Context, title string) (*omdb.Details, error) {
	if s.store != nil {
		if err := s.store.DeleteCachedMetadata(ctx, title); err != nil {
			s.logger.Warn("failed to drop cached metadata", "error", err, "title", title)
		}
	}
	return s.Lookup(ctx, title)
}

func (s *MetadataService) fetch(ctx context.Context, title string) (*omdb.Details, error) {
	s.logger.Debug("fetching metadata from OMDb", "title", title)

	details, err := s.client.LookupTitle(ctx, title)
	switch {
	case err == nil:
		s.cache(ctx, title, details)
		return details, nil
	case errors.Is(err, omdb.ErrNotFound):
		s.cache(ctx, title, nil)
		return nil, err
	default:
		return nil, err
	}
}

func (s *MetadataService) cache(ctx context.Context, title string, details *omdb.Details) {
	if s.store == nil {
		return
	}
	if err := s.store.SetCachedMetadata(ctx, title, details); err != nil {
		s.logger.Warn("failed to cache metadata", "error", err, "title", title)
	}
}

func translateMetadataError(title string, err error) error {
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return domainerrors.Wrapf(err, domainerrors.CodeNotFound, "no metadata for %q", title)
	case errors.Is(err, omdb.ErrEmptyTitle):
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "title is required")
	case errors.Is(err, omdb.ErrMissingAPIKey):
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "metadata lookups are disabled")
	case errors.Is(err, omdb.ErrRateLimited),
		errors.Is(err, omdb.ErrUnavailable),
		errors.Is(err, omdb.ErrServer),
		errors.Is(err, omdb.ErrUnauthorized):
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "metadata provider unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "metadata lookup timed out")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "metadata lookup failed")
	}
}
