package catalog

import "github.com/cinemood/cinemood-server/internal/domain"

// Sample returns a four-title catalog for demos and for serving when the
// real sources are unavailable. The loader never substitutes it on its own.
func Sample() *Catalog {
	movies := []domain.Movie{
		{ID: 0, Title: "Inception", Genres: "Action|Sci-Fi", Score: 8.8, Industry: domain.IndustryGeneral},
		{ID: 1, Title: "The Dark Knight", Genres: "Action|Thriller", Score: 9.0, Industry: domain.IndustryGeneral},
		{ID: 2, Title: "3 Idiots", Genres: "Comedy|Drama", Score: 8.4, Industry: domain.IndustryRegional},
		{ID: 3, Title: "Dil Chahta Hai", Genres: "Drama|Romance", Score: 8.1, Industry: domain.IndustryRegional},
	}
	return New(movies, LoadStats{
		GeneralRows:  2,
		GeneralKept:  2,
		RegionalRows: 2,
		RegionalKept: 2,
	})
}
