package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/tabular"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader(generalPath, regionalPath string, fb ScoreFallback) *Loader {
	return NewLoader(Options{
		GeneralPath:  generalPath,
		RegionalPath: regionalPath,
		Fallback:     fb,
		Logger:       discardLogger(),
	})
}

func TestLoad_UnifiesSources(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nInception,\"Action, Sci-Fi\",8.8\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\n3 Idiots,\"Comedy, Drama\",\n")

	cat, err := newTestLoader(gen, reg, ScoreFallback{}).Load(context.Background())
	require.NoError(t, err)

	movies := cat.Movies()
	require.Len(t, movies, 2)

	assert.Equal(t, domain.Movie{
		ID: 0, Title: "Inception", Genres: "Action|Sci-Fi", Score: 8.8, Industry: domain.IndustryGeneral,
	}, movies[0])
	assert.Equal(t, domain.Movie{
		ID: 1, Title: "3 Idiots", Genres: "Comedy|Drama", Score: DefaultFallbackScore, Industry: domain.IndustryRegional,
	}, movies[1])

	stats := cat.Stats()
	assert.Equal(t, 1, stats.GeneralKept)
	assert.Equal(t, 1, stats.RegionalKept)
	assert.Equal(t, 1, stats.Filled)
	assert.NotEmpty(t, cat.BuildID())
}

func TestLoad_MissingGeneralSource(t *testing.T) {
	dir := t.TempDir()
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\n3 Idiots,Comedy,1\n")
	missing := filepath.Join(dir, "imdb.csv")

	cat, err := newTestLoader(missing, reg, ScoreFallback{}).Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrMissingSource)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var mse *MissingSourceError
	require.True(t, errors.As(err, &mse))
	assert.Equal(t, missing, mse.Path)
	assert.Equal(t, SourceGeneral, mse.Source)
	assert.Contains(t, err.Error(), missing)
}

func TestLoad_MissingRegionalSource(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nInception,Action,8.8\n")

	_, err := newTestLoader(gen, filepath.Join(dir, "nope.csv"), ScoreFallback{}).Load(context.Background())

	var mse *MissingSourceError
	require.True(t, errors.As(err, &mse))
	assert.Equal(t, SourceRegional, mse.Source)
}

func TestLoad_DropsUntitledRowsBeforeAssigningIDs(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv",
		"names,genre,score\n"+
			"A,Drama,7\n"+
			",Drama,9\n"+
			"   ,Comedy,9\n"+
			"B,,not-a-number\n")
	reg := writeFile(t, dir, "bollywood.csv",
		"Movie Name,Genre,Revenue(INR)\n"+
			",Drama,100\n"+
			"C,Drama,\"₹ 2,000,000\"\n")

	cat, err := newTestLoader(gen, reg, ScoreFallback{}).Load(context.Background())
	require.NoError(t, err)

	movies := cat.Movies()
	require.Len(t, movies, 3)

	assert.Equal(t, "A", movies[0].Title)
	assert.Equal(t, 0, movies[0].ID)
	assert.Equal(t, "B", movies[1].Title)
	assert.Equal(t, 1, movies[1].ID)
	assert.Equal(t, "", movies[1].Genres)
	assert.Equal(t, 0.0, movies[1].Score)

	assert.Equal(t, "C", movies[2].Title)
	assert.Equal(t, 2, movies[2].ID)
	assert.Equal(t, 2000000.0, movies[2].Score)

	stats := cat.Stats()
	assert.Equal(t, 4, stats.GeneralRows)
	assert.Equal(t, 2, stats.GeneralKept)
	assert.Equal(t, 2, stats.RegionalRows)
	assert.Equal(t, 1, stats.RegionalKept)
	assert.Equal(t, 3, stats.Dropped())
}

func TestLoad_EmptyGeneralStartsRegionalAtZero(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\nX,Drama,1\nY,Drama,2\n")

	cat, err := newTestLoader(gen, reg, ScoreFallback{}).Load(context.Background())
	require.NoError(t, err)

	movies := cat.Movies()
	require.Len(t, movies, 2)
	assert.Equal(t, 0, movies[0].ID)
	assert.Equal(t, 1, movies[1].ID)
	assert.Equal(t, domain.IndustryRegional, movies[0].Industry)
}

func TestLoad_IDsUniqueAndScoresDefined(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nA,Drama,1\nB,Drama,\nC,Drama,x\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\nA,Drama,\nD,Drama,5\n")

	cat, err := newTestLoader(gen, reg, ScoreFallback{}).Load(context.Background())
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, m := range cat.Movies() {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
		assert.False(t, m.ScoreMissing)
		assert.GreaterOrEqual(t, m.ID, 0)
	}
	// Same title in both sources is kept twice.
	assert.Len(t, seen, 5)
}

func TestLoad_UniformPolicy(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nA,Drama,\nB,Drama,\nC,Drama,\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\n")

	fb := ScoreFallback{
		Policy: ScorePolicyUniform,
		Min:    DefaultUniformMin,
		Max:    DefaultUniformMax,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
	cat, err := newTestLoader(gen, reg, fb).Load(context.Background())
	require.NoError(t, err)

	for _, m := range cat.Movies() {
		assert.GreaterOrEqual(t, m.Score, DefaultUniformMin)
		assert.LessOrEqual(t, m.Score, DefaultUniformMax)
	}
	assert.Equal(t, 3, cat.Stats().Filled)
}

func TestLoad_NonePolicyFlagsMissingScores(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nA,Drama,\nB,Drama,7.5\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\n")

	cat, err := newTestLoader(gen, reg, ScoreFallback{Policy: ScorePolicyNone}).Load(context.Background())
	require.NoError(t, err)

	movies := cat.Movies()
	assert.True(t, movies[0].ScoreMissing)
	assert.False(t, movies[1].ScoreMissing)
	assert.Equal(t, 1, cat.Stats().Unscored)
}

func TestLoad_CustomColumnsAndExcel(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "Film,Kinds,Stars\nInception,\"Action, Sci-Fi\",8.8\n")
	reg := filepath.Join(dir, "bollywood.xlsx")
	require.NoError(t, tabular.Write(reg, tabular.New(
		[]string{"Movie Name", "Genre", "Revenue(INR)"},
		[][]string{{"3 Idiots", "Comedy, Drama", "4,000,000,000"}},
	)))

	loader := NewLoader(Options{
		GeneralPath:    gen,
		RegionalPath:   reg,
		GeneralColumns: Columns{Title: []string{"film"}, Genre: []string{"kinds"}, Score: []string{"stars"}},
		Logger:         discardLogger(),
	})

	cat, err := loader.Load(context.Background())
	require.NoError(t, err)

	movies := cat.Movies()
	require.Len(t, movies, 2)
	assert.Equal(t, "Action|Sci-Fi", movies[0].Genres)
	assert.Equal(t, 8.8, movies[0].Score)
	assert.Equal(t, 4e9, movies[1].Score)
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	gen := writeFile(t, dir, "imdb.csv", "names,genre,score\nA,Drama,1\n")
	reg := writeFile(t, dir, "bollywood.csv", "Movie Name,Genre,Revenue(INR)\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(gen, reg, ScoreFallback{}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
