// Package main writes synthetic catalog sources for local development.
//
// The general source uses the IMDb-style header (names, genre, score) and
// the regional source the Bollywood one (Movie Name, Genre, Revenue(INR)).
// A .xlsx extension writes an Excel workbook instead of CSV.
//
// Usage:
//
//	go run ./cmd/seed
//	go run ./cmd/seed -general 500 -regional 200 -out movie_data
//	go run ./cmd/seed -regional-file bollywood_movies.xlsx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cinemood/cinemood-server/internal/catalog"
	"github.com/cinemood/cinemood-server/internal/genre"
	"github.com/cinemood/cinemood-server/internal/tabular"
)

var (
	outDir        = flag.String("out", "movie_data", "Output directory")
	generalFile   = flag.String("general-file", "imdb_movies.csv", "General source file name (.csv or .xlsx)")
	regionalFile  = flag.String("regional-file", "bollywood_movies.csv", "Regional source file name (.csv or .xlsx)")
	generalCount  = flag.Int("general", 250, "Number of general titles")
	regionalCount = flag.Int("regional", 100, "Number of regional titles")
	blankScores   = flag.Float64("blank-scores", 0.05, "Fraction of rows written without a score")
	seed          = flag.Int64("seed", 0, "Random seed (0 picks a random one)")
)

func main() {
	flag.Parse()

	faker := gofakeit.New(*seed)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	general := catalog.DefaultGeneralColumns()
	regional := catalog.DefaultRegionalColumns()

	generalPath := filepath.Join(*outDir, *generalFile)
	table := tabular.New(
		[]string{general.Title[0], general.Genre[0], general.Score[0]},
		rows(faker, *generalCount, func() string {
			return strconv.FormatFloat(faker.Float64Range(1, 10), 'f', 1, 64)
		}),
	)
	if err := tabular.Write(generalPath, table); err != nil {
		log.Fatalf("Failed to write general source: %v", err)
	}
	fmt.Printf("Wrote %d general titles to %s\n", table.Len(), generalPath)

	regionalPath := filepath.Join(*outDir, *regionalFile)
	table = tabular.New(
		[]string{regional.Title[0], regional.Genre[0], regional.Score[0]},
		rows(faker, *regionalCount, func() string {
			return strconv.FormatFloat(faker.Float64Range(1e7, 5e9), 'f', 0, 64)
		}),
	)
	if err := tabular.Write(regionalPath, table); err != nil {
		log.Fatalf("Failed to write regional source: %v", err)
	}
	fmt.Printf("Wrote %d regional titles to %s\n", table.Len(), regionalPath)
}

// rows builds n (title, genres, score) rows. Genres are written the way
// the real exports write them: comma-separated labels.
func rows(faker *gofakeit.Faker, n int, score func() string) [][]string {
	out := make([][]string, 0, n)
	labels := append([]string(nil), genre.Known...)

	for range n {
		faker.ShuffleStrings(labels)
		genres := strings.Join(labels[:faker.Number(1, 3)], ", ")

		s := ""
		if faker.Float64() >= *blankScores {
			s = score()
		}

		out = append(out, []string{title(faker), genres, s})
	}
	return out
}

func title(faker *gofakeit.Faker) string {
	if faker.Bool() {
		return faker.MovieName()
	}
	return fmt.Sprintf("The %s %s", capitalize(faker.AdjectiveDescriptive()), capitalize(faker.NounAbstract()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
