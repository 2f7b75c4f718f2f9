// Package search provides full-text title search over the catalog using Bleve.
package search

import (
	"strconv"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/genre"
)

// MovieDocument is the indexed form of a catalog movie.
type MovieDocument struct {
	ID         string   `json:"id"`
	MovieID    int      `json:"movie_id"`
	Title      string   `json:"title"`
	Genres     string   `json:"genres"`      // Original pipe-delimited string
	GenreSlugs []string `json:"genre_slugs"` // For exact filtering
	Industry   string   `json:"industry"`
	Score      float64  `json:"score"`
}

// DocumentFromMovie converts a movie to its index document.
func DocumentFromMovie(m *domain.Movie) *MovieDocument {
	labels := genre.Split(m.Genres)
	slugs := make([]string, 0, len(labels))
	for _, l := range labels {
		if s := genre.Slugify(l); s != "" {
			slugs = append(slugs, s)
		}
	}

	return &MovieDocument{
		ID:         strconv.Itoa(m.ID),
		MovieID:    m.ID,
		Title:      m.Title,
		Genres:     m.Genres,
		GenreSlugs: slugs,
		Industry:   string(m.Industry),
		Score:      m.Score,
	}
}

// ToMap converts the document to a map so field names match the mapping.
func (d *MovieDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"movie_id":    float64(d.MovieID),
		"title":       d.Title,
		"genres":      d.Genres,
		"genre_slugs": d.GenreSlugs,
		"industry":    d.Industry,
		"score":       d.Score,
	}
}
