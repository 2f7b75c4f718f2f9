package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
)

func (s *Server) registerMetadataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMetadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata",
		Summary:     "Get title metadata",
		Description: "Returns OMDb plot, release date, rating and poster for a title. Results are cached.",
		Tags:        []string{"Metadata"},
	}, s.handleGetMetadata)
}

// GetMetadataInput contains parameters for a metadata lookup.
type GetMetadataInput struct {
	Title   string `query:"title" required:"true" doc:"Exact movie title" validate:"required,max=200"`
	Refresh bool   `query:"refresh" doc:"Bypass and update the cache"`
}

// MetadataOutput wraps title details for Huma.
type MetadataOutput struct {
	Body *omdb.Details
}

func (s *Server) handleGetMetadata(ctx context.Context, input *GetMetadataInput) (*MetadataOutput, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	lookup := s.services.Metadata.Lookup
	if input.Refresh {
		lookup = s.services.Metadata.Refresh
	}

	details, err := lookup(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	return &MetadataOutput{Body: details}, nil
}
