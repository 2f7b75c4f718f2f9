package api

import (
	"fmt"

	"github.com/cinemood/cinemood-server/internal/domain"
	domainerrors "github.com/cinemood/cinemood-server/internal/errors"
	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
	"github.com/cinemood/cinemood-server/internal/service"
)

// MovieResponse is a catalog movie in API responses.
type MovieResponse struct {
	ID       int           `json:"id" doc:"Catalog ID"`
	Title    string        `json:"title" doc:"Movie title"`
	Genres   []string      `json:"genres" doc:"Genre labels"`
	Score    float64       `json:"score" doc:"Popularity score: rating for general titles, revenue for regional ones"`
	Industry string        `json:"industry" doc:"Source catalog: general or regional"`
	Details  *omdb.Details `json:"details,omitempty" doc:"Display metadata, present when enrich=true"`
}

func toMovieResponse(rec *service.Recommendation) MovieResponse {
	genres := rec.GenreList()
	if genres == nil {
		genres = []string{}
	}
	return MovieResponse{
		ID:       rec.ID,
		Title:    rec.Title,
		Genres:   genres,
		Score:    rec.Score,
		Industry: string(rec.Industry),
		Details:  rec.Details,
	}
}

func toMovieResponses(recs []service.Recommendation) []MovieResponse {
	out := make([]MovieResponse, len(recs))
	for i := range recs {
		out[i] = toMovieResponse(&recs[i])
	}
	return out
}

// resolveCount applies the default to an absent count and checks bounds.
func (s *Server) resolveCount(n int) (int, error) {
	if n == 0 {
		return s.cfg.DefaultCount, nil
	}
	if err := s.validator.Var("n", n, fmt.Sprintf("gte=1,lte=%d", s.cfg.MaxCount)); err != nil {
		return 0, err
	}
	return n, nil
}

// resolveScope parses a scope that already passed validation.
func resolveScope(raw string) (domain.Scope, error) {
	scope, err := domain.ParseScope(raw)
	if err != nil {
		return "", domainerrors.ValidationWithDetails(err.Error(), map[string]string{
			"scope": "must be one of: all, general, regional",
		})
	}
	return scope, nil
}
