package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/recommend"
	"github.com/cinemood/cinemood-server/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommendByMood",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/mood",
		Summary:     "Recommend by mood",
		Description: "Returns movies whose genres fit the mood. Unknown moods fall back to the most popular movies unless strict is set.",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommendByMood)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommendPopular",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/popular",
		Summary:     "Popular movies",
		Description: "Returns the highest scored movies",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommendPopular)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommendRandom",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/random",
		Summary:     "Random movies",
		Description: "Returns distinct movies chosen uniformly at random",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommendRandom)
}

// === DTOs ===

// RecommendationQuery holds the parameters shared by every recommendation endpoint.
type RecommendationQuery struct {
	N      int    `query:"n" doc:"Number of movies (default from server config)" validate:"gte=0"`
	Scope  string `query:"scope" doc:"all, general (hollywood) or regional (bollywood)" validate:"omitempty,scope"`
	Enrich bool   `query:"enrich" doc:"Attach OMDb details to every movie"`
}

// MoodRecommendationInput contains parameters for mood recommendations.
type MoodRecommendationInput struct {
	Mood   string `query:"mood" required:"true" doc:"Mood name, case-insensitive" validate:"required,max=64"`
	Strict bool   `query:"strict" doc:"Reject unknown moods instead of falling back to popular"`
	RecommendationQuery
}

// RecommendationsResponse contains a recommendation list.
type RecommendationsResponse struct {
	Mood      string          `json:"mood,omitempty" doc:"Canonical mood name, when the mood is known"`
	KnownMood *bool           `json:"known_mood,omitempty" doc:"False when the mood fell back to popular"`
	Scope     domain.Scope    `json:"scope" doc:"Applied scope"`
	Count     int             `json:"count" doc:"Number of movies returned"`
	Movies    []MovieResponse `json:"movies" doc:"Recommended movies"`
}

// RecommendationsOutput wraps the recommendation response for Huma.
type RecommendationsOutput struct {
	Body RecommendationsResponse
}

// === Handlers ===

func (s *Server) handleRecommendByMood(ctx context.Context, input *MoodRecommendationInput) (*RecommendationsOutput, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if input.Strict {
		if err := s.validator.Var("mood", input.Mood, "mood"); err != nil {
			return nil, err
		}
	}

	n, scope, err := s.resolveQuery(&input.RecommendationQuery)
	if err != nil {
		return nil, err
	}

	recs, err := s.services.Recommendations.ByMood(ctx, input.Mood, n, scope, input.Enrich)
	if err != nil {
		return nil, err
	}

	name, known := recommend.CanonicalMood(input.Mood)
	out := newRecommendationsOutput(recs, scope)
	out.Body.Mood = name
	out.Body.KnownMood = &known
	return out, nil
}

func (s *Server) handleRecommendPopular(ctx context.Context, input *RecommendationQuery) (*RecommendationsOutput, error) {
	return s.listRecommendations(ctx, input, s.services.Recommendations.Popular)
}

func (s *Server) handleRecommendRandom(ctx context.Context, input *RecommendationQuery) (*RecommendationsOutput, error) {
	return s.listRecommendations(ctx, input, s.services.Recommendations.Random)
}

type listFunc func(ctx context.Context, n int, scope domain.Scope, enrich bool) ([]service.Recommendation, error)

func (s *Server) listRecommendations(ctx context.Context, input *RecommendationQuery, list listFunc) (*RecommendationsOutput, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	n, scope, err := s.resolveQuery(input)
	if err != nil {
		return nil, err
	}

	recs, err := list(ctx, n, scope, input.Enrich)
	if err != nil {
		return nil, err
	}
	return newRecommendationsOutput(recs, scope), nil
}

func (s *Server) resolveQuery(q *RecommendationQuery) (int, domain.Scope, error) {
	n, err := s.resolveCount(q.N)
	if err != nil {
		return 0, "", err
	}
	scope, err := resolveScope(q.Scope)
	if err != nil {
		return 0, "", err
	}
	return n, scope, nil
}

func newRecommendationsOutput(recs []service.Recommendation, scope domain.Scope) *RecommendationsOutput {
	return &RecommendationsOutput{
		Body: RecommendationsResponse{
			Scope:  scope,
			Count:  len(recs),
			Movies: toMovieResponses(recs),
		},
	}
}
