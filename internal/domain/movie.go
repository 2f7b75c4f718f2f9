package domain

import (
	"fmt"
	"strings"

	"github.com/cinemood/cinemood-server/internal/genre"
)

// Industry tags which source catalog a movie came from.
type Industry string

// Industries known to the unified catalog.
const (
	IndustryGeneral  Industry = "general"
	IndustryRegional Industry = "regional"
)

// Valid reports whether the industry is one of the known values.
func (i Industry) Valid() bool {
	return i == IndustryGeneral || i == IndustryRegional
}

// Movie is a single record in the unified catalog.
type Movie struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Genres   string   `json:"genres"` // Pipe-delimited, e.g. "Action|Sci-Fi"
	Score    float64  `json:"score"`
	Industry Industry `json:"industry"`

	// ScoreMissing marks a record whose loader never produced a score.
	// The recommender backfills these once at construction.
	ScoreMissing bool `json:"-"`
}

// GenreList splits the pipe-delimited genres into labels.
// Empty segments are skipped.
func (m *Movie) GenreList() []string {
	return genre.Split(m.Genres)
}

// Scope restricts queries to a subset of industries.
type Scope string

// Query scopes.
const (
	ScopeAll      Scope = "all"
	ScopeGeneral  Scope = "general"
	ScopeRegional Scope = "regional"
)

// ParseScope converts user input into a Scope.
// Empty input means ScopeAll. "hollywood" and "bollywood" are accepted
// as aliases for the general and regional scopes.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "general", "hollywood", "imdb":
		return ScopeGeneral, nil
	case "regional", "bollywood":
		return ScopeRegional, nil
	default:
		return "", fmt.Errorf("unknown scope %q", s)
	}
}

// Includes reports whether a movie of the given industry falls inside the scope.
func (s Scope) Includes(i Industry) bool {
	switch s {
	case ScopeGeneral:
		return i == IndustryGeneral
	case ScopeRegional:
		return i == IndustryRegional
	default:
		return true
	}
}

// FilterScope returns the movies inside scope, preserving order.
// The input slice is never modified.
func FilterScope(movies []Movie, scope Scope) []Movie {
	out := make([]Movie, 0, len(movies))
	for i := range movies {
		if scope.Includes(movies[i].Industry) {
			out = append(out, movies[i])
		}
	}
	return out
}
