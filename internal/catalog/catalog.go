// Package catalog builds the unified, read-only movie catalog from the
// general and regional source files.
package catalog

import (
	"time"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/id"
)

// LoadStats counts what happened to each source during a build.
type LoadStats struct {
	GeneralRows  int `json:"general_rows"`
	GeneralKept  int `json:"general_kept"`
	RegionalRows int `json:"regional_rows"`
	RegionalKept int `json:"regional_kept"`
	Filled       int `json:"filled"` // Scores supplied by the fallback policy
	Unscored     int `json:"unscored"`
}

// Dropped returns how many rows were discarded for lacking a title.
func (s LoadStats) Dropped() int {
	return (s.GeneralRows - s.GeneralKept) + (s.RegionalRows - s.RegionalKept)
}

// Catalog is an immutable set of movies with unique IDs.
// All accessors return copies.
type Catalog struct {
	movies  []domain.Movie
	byID    map[int]int
	stats   LoadStats
	buildID string
	builtAt time.Time
}

// New wraps movies in a Catalog. The slice is copied.
func New(movies []domain.Movie, stats LoadStats) *Catalog {
	c := &Catalog{
		movies:  make([]domain.Movie, len(movies)),
		byID:    make(map[int]int, len(movies)),
		stats:   stats,
		buildID: id.Catalog(),
		builtAt: time.Now().UTC(),
	}
	copy(c.movies, movies)
	for i := range c.movies {
		c.byID[c.movies[i].ID] = i
	}
	return c
}

// Movies returns a copy of every record in catalog order.
func (c *Catalog) Movies() []domain.Movie {
	out := make([]domain.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Get returns the movie with the given ID.
func (c *Catalog) Get(movieID int) (domain.Movie, bool) {
	i, ok := c.byID[movieID]
	if !ok {
		return domain.Movie{}, false
	}
	return c.movies[i], true
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Stats returns the counters recorded while loading.
func (c *Catalog) Stats() LoadStats {
	return c.stats
}

// BuildID identifies this build. Every call to New gets a fresh ID.
func (c *Catalog) BuildID() string {
	return c.buildID
}

// BuiltAt is when the catalog was assembled.
func (c *Catalog) BuiltAt() time.Time {
	return c.builtAt
}

// CountBy returns the number of movies per industry.
func (c *Catalog) CountBy() map[domain.Industry]int {
	out := make(map[domain.Industry]int, 2)
	for i := range c.movies {
		out[c.movies[i].Industry]++
	}
	return out
}
