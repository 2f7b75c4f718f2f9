// Package store persists looked-up movie metadata in Badger.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Cache durations.
const (
	DefaultTTL         = 7 * 24 * time.Hour // Plots and posters rarely change
	DefaultNegativeTTL = 24 * time.Hour     // Titles OMDb did not know
)

// Options configures a Store.
type Options struct {
	// Path is the Badger directory. Empty selects an in-memory database.
	Path        string
	TTL         time.Duration
	NegativeTTL time.Duration
	Logger      *slog.Logger

	// ReadOnly opens an existing directory without taking the write lock.
	ReadOnly bool
}

// Store wraps a Badger database instance.
type Store struct {
	db          *badger.DB
	logger      *slog.Logger
	ttl         time.Duration
	negativeTTL time.Duration
	inMemory    bool
	now         func() time.Time
}

// New opens the database.
func New(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" {
		bopts = bopts.WithInMemory(true)
	} else if opts.ReadOnly {
		bopts = bopts.WithReadOnly(true)
	} else {
		bopts.SyncWrites = true
		bopts.CompactL0OnClose = true
	}
	bopts.Logger = nil // Badger's internal logging is too chatty

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:          db,
		logger:      opts.Logger,
		ttl:         opts.TTL,
		negativeTTL: opts.NegativeTTL,
		inMemory:    opts.Path == "",
		now:         time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.negativeTTL <= 0 {
		s.negativeTTL = DefaultNegativeTTL
	}

	if s.logger != nil {
		s.logger.Info("Badger database opened successfully",
			"path", opts.Path,
			"in_memory", s.inMemory,
		)
	}

	return s, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Healthy reports whether the database is open.
func (s *Store) Healthy() bool {
	return !s.db.IsClosed()
}

// InMemory reports whether the store discards data on close.
func (s *Store) InMemory() bool {
	return s.inMemory
}
