package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie",
		Description: "Returns a catalog movie by ID",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)
}

// GetMovieInput contains parameters for getting a movie.
type GetMovieInput struct {
	ID     int  `path:"id" doc:"Catalog ID" validate:"gte=0"`
	Enrich bool `query:"enrich" doc:"Attach OMDb details"`
}

// MovieOutput wraps a movie for Huma.
type MovieOutput struct {
	Body MovieResponse
}

func (s *Server) handleGetMovie(ctx context.Context, input *GetMovieInput) (*MovieOutput, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	rec, err := s.services.Recommendations.Movie(ctx, input.ID, input.Enrich)
	if err != nil {
		return nil, err
	}
	return &MovieOutput{Body: toMovieResponse(rec)}, nil
}
