package search

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/cinemood/cinemood-server/internal/domain"
)

const batchSize = 500

// SearchIndex wraps an in-memory Bleve index of the current catalog.
//
// Thread safety: all public methods are safe for concurrent use.
// Rebuild swaps in a fully built index under the write lock.
type SearchIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	Logger *slog.Logger // Uses discard if nil
}

// NewSearchIndex creates an empty index.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SearchIndex{index: index, logger: logger}, nil
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild replaces the index contents with movies. The new index is built
// off to the side so searches keep hitting the old one until the swap.
func (s *SearchIndex) Rebuild(movies []domain.Movie) error {
	next, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	if err := indexMovies(next, movies); err != nil {
		_ = next.Close()
		return err
	}

	s.mu.Lock()
	old := s.index
	s.index = next
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous search index", "error", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(movies))
	return nil
}

// indexMovies writes movies in chunks to bound batch memory.
func indexMovies(index bleve.Index, movies []domain.Movie) error {
	for i := 0; i < len(movies); i += batchSize {
		end := min(i+batchSize, len(movies))

		batch := index.NewBatch()
		for j := i; j < end; j++ {
			doc := DocumentFromMovie(&movies[j])
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}
