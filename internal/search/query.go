package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/genre"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchParams contains the search request parameters.
type SearchParams struct {
	Query  string
	Scope  domain.Scope
	Genres []string // Genre labels; any match
	Limit  int
	Offset int
}

// SearchHit is a single matched movie.
type SearchHit struct {
	MovieID    int               `json:"id"`
	Title      string            `json:"title"`
	Genres     string            `json:"genres"`
	Industry   domain.Industry   `json:"industry"`
	Score      float64           `json:"score"`
	Relevance  float64           `json:"relevance"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// SearchResult contains search results and metadata.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// Search runs a title query. An empty query lists the scope by score.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), limit, max(params.Offset, 0), false)
	if strings.TrimSpace(params.Query) == "" {
		req.SortBy([]string{"-score", "movie_id"})
	} else {
		req.SortBy([]string{"-_score", "-score", "movie_id"})
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
	}
	req.Fields = []string{"movie_id", "title", "genres", "industry", "score"}

	s.mu.RLock()
	res, err := s.index.SearchInContext(ctx, req)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := SearchHit{Relevance: hit.Score}
		if v, ok := hit.Fields["movie_id"].(float64); ok {
			h.MovieID = int(v)
		}
		if v, ok := hit.Fields["title"].(string); ok {
			h.Title = v
		}
		if v, ok := hit.Fields["genres"].(string); ok {
			h.Genres = v
		}
		if v, ok := hit.Fields["industry"].(string); ok {
			h.Industry = domain.Industry(v)
		}
		if v, ok := hit.Fields["score"].(float64); ok {
			h.Score = v
		}
		if frags := hit.Fragments["title"]; len(frags) > 0 {
			h.Highlights = map[string]string{"title": frags[0]}
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery combines the text query with scope and genre filters.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		titleMatch := bleve.NewMatchQuery(q)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		textQueries := []query.Query{titleMatch}

		// Prefix on the last word for type-ahead.
		words := strings.Fields(strings.ToLower(q))
		if last := words[len(words)-1]; len(last) >= 2 {
			prefix := bleve.NewPrefixQuery(last)
			prefix.SetField("title_plain")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Scope != "" && params.Scope != domain.ScopeAll {
		industry := string(domain.IndustryGeneral)
		if params.Scope == domain.ScopeRegional {
			industry = string(domain.IndustryRegional)
		}
		tq := bleve.NewTermQuery(industry)
		tq.SetField("industry")
		queries = append(queries, tq)
	}

	if len(params.Genres) > 0 {
		genreQueries := make([]query.Query, 0, len(params.Genres))
		for _, g := range params.Genres {
			slug := genre.Slugify(g)
			if slug == "" {
				continue
			}
			gq := bleve.NewTermQuery(slug)
			gq.SetField("genre_slugs")
			genreQueries = append(genreQueries, gq)
		}
		if len(genreQueries) > 0 {
			queries = append(queries, bleve.NewDisjunctionQuery(genreQueries...))
		}
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
