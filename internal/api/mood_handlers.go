package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/recommend"
)

func (s *Server) registerMoodRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMoods",
		Method:      http.MethodGet,
		Path:        "/api/v1/moods",
		Summary:     "List moods",
		Description: "Returns the selectable moods and the genres each one maps to",
		Tags:        []string{"Moods"},
	}, s.handleListMoods)
}

// ListMoodsOutput contains the mood table.
type ListMoodsOutput struct {
	Body []recommend.MoodInfo
}

func (s *Server) handleListMoods(_ context.Context, _ *struct{}) (*ListMoodsOutput, error) {
	return &ListMoodsOutput{Body: recommend.Moods()}, nil
}
