package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search movies",
		Description: "Searches catalog titles. Without q, lists the scope by score.",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains parameters for a title search.
type SearchInput struct {
	Q      string   `query:"q" doc:"Title query; the last word matches as a prefix" validate:"max=200"`
	Scope  string   `query:"scope" doc:"all, general (hollywood) or regional (bollywood)" validate:"omitempty,scope"`
	Genres []string `query:"genre" doc:"Only movies with any of these genres"`
	Limit  int      `query:"limit" doc:"Page size (default 20)" validate:"gte=0,lte=100"`
	Offset int      `query:"offset" doc:"Results to skip" validate:"gte=0"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	scope, err := resolveScope(input.Scope)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Search.Search(ctx, search.SearchParams{
		Query:  input.Q,
		Scope:  scope,
		Genres: input.Genres,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: res}, nil
}
