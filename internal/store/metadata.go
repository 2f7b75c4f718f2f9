package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
	"github.com/cinemood/cinemood-server/internal/normalize"
)

// MetadataPrefix namespaces OMDb cache entries.
const MetadataPrefix = "metadata:omdb:"

// CachedMetadata wraps fetched details with cache info.
// A nil Details with NotFound set records a confirmed miss.
type CachedMetadata struct {
	Title     string        `json:"title"`
	Details   *omdb.Details `json:"details,omitempty"`
	NotFound  bool          `json:"not_found,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
}

func metadataKey(title string) []byte {
	return fmt.Appendf(nil, "%s%s", MetadataPrefix, normalize.TitleKey(title))
}

// GetCachedMetadata retrieves cached details for a title.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedMetadata(ctx context.Context, title string) (*CachedMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached CachedMetadata
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metadataKey(title))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached metadata: %w", err)
	}

	if s.expired(&cached) {
		return nil, nil
	}

	return &cached, nil
}

// SetCachedMetadata stores details for a title. A nil details value
// records that OMDb has no such title, using the shorter negative TTL.
func (s *Store) SetCachedMetadata(ctx context.Context, title string, details *omdb.Details) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedMetadata{
		Title:     title,
		Details:   details,
		NotFound:  details == nil,
		FetchedAt: s.now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached metadata: %w", err)
	}

	ttl := s.ttl
	if cached.NotFound {
		ttl = s.negativeTTL
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(metadataKey(title), data).WithTTL(ttl))
	})
}

// DeleteCachedMetadata removes a cached entry.
func (s *Store) DeleteCachedMetadata(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(metadataKey(title))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Idempotent
		}
		return err
	})
}

// EachCachedMetadata calls fn for every live cache entry in key order.
// Iteration stops at the first error returned by fn.
func (s *Store) EachCachedMetadata(ctx context.Context, fn func(key string, cached *CachedMetadata) error) error {
	prefix := []byte(MetadataPrefix)

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			var cached CachedMetadata
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &cached)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			if s.expired(&cached) {
				continue
			}
			if err := fn(string(item.KeyCopy(nil)), &cached); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountCachedMetadata returns the number of live cache entries.
func (s *Store) CountCachedMetadata(ctx context.Context) (int, error) {
	n := 0
	err := s.EachCachedMetadata(ctx, func(string, *CachedMetadata) error {
		n++
		return nil
	})
	return n, err
}

func (s *Store) expired(c *CachedMetadata) bool {
	ttl := s.ttl
	if c.NotFound {
		ttl = s.negativeTTL
	}
	return s.now().Sub(c.FetchedAt) > ttl
}
