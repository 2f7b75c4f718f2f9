package recommend

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemood/cinemood-server/internal/catalog"
	"github.com/cinemood/cinemood-server/internal/domain"
)

type movieList []domain.Movie

func (l movieList) Movies() []domain.Movie {
	out := make([]domain.Movie, len(l))
	copy(out, l)
	return out
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

// fixture has a mix of industries, genres and tied scores.
func fixture() movieList {
	return movieList{
		{ID: 0, Title: "Inception", Genres: "Action|Sci-Fi", Score: 8.8, Industry: domain.IndustryGeneral},
		{ID: 1, Title: "The Dark Knight", Genres: "Action|Thriller", Score: 9.0, Industry: domain.IndustryGeneral},
		{ID: 2, Title: "Up", Genres: "Animation|Adventure|Family", Score: 8.3, Industry: domain.IndustryGeneral},
		{ID: 3, Title: "Heat", Genres: "Crime|Thriller", Score: 8.3, Industry: domain.IndustryGeneral},
		{ID: 4, Title: "3 Idiots", Genres: "Comedy|Drama", Score: 8.4, Industry: domain.IndustryRegional},
		{ID: 5, Title: "Dil Chahta Hai", Genres: "Drama|Romance", Score: 8.1, Industry: domain.IndustryRegional},
		{ID: 6, Title: "Hera Pheri", Genres: "Comedy", Score: 8.2, Industry: domain.IndustryRegional},
		{ID: 7, Title: "Untitled Doc", Genres: "", Score: 5.0, Industry: domain.IndustryRegional},
	}
}

func TestByMood_InceptionAndThreeIdiots(t *testing.T) {
	src := movieList{
		{ID: 0, Title: "Inception", Genres: "Action|Sci-Fi", Score: 8.8, Industry: domain.IndustryGeneral},
		{ID: 1, Title: "3 Idiots", Genres: "Comedy|Drama", Score: 0, Industry: domain.IndustryRegional},
	}
	r := New(src, quiet())

	happy := r.ByMood("Happy", 5, domain.ScopeAll)
	require.Len(t, happy, 1)
	assert.Equal(t, "3 Idiots", happy[0].Title)

	excited := r.ByMood("Excited", 5, domain.ScopeAll)
	require.Len(t, excited, 1)
	assert.Equal(t, "Inception", excited[0].Title)

	// No regional Excited movie, so the regional popular list is used.
	fallback := r.ByMood("Excited", 5, domain.ScopeRegional)
	require.Len(t, fallback, 1)
	assert.Equal(t, "3 Idiots", fallback[0].Title)
}

func TestByMood_FromLoadedCSVFiles(t *testing.T) {
	dir := t.TempDir()
	gen := filepath.Join(dir, "imdb.csv")
	reg := filepath.Join(dir, "bollywood.csv")
	require.NoError(t, os.WriteFile(gen, []byte("names,genre,score\nInception,\"Action, Sci-Fi\",8.8\n"), 0o644))
	require.NoError(t, os.WriteFile(reg, []byte("Movie Name,Genre,Revenue(INR)\n3 Idiots,\"Comedy, Drama\",2000000000\n"), 0o644))

	cat, err := catalog.NewLoader(catalog.Options{
		GeneralPath:  gen,
		RegionalPath: reg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Movie{
		{ID: 0, Title: "Inception", Genres: "Action|Sci-Fi", Score: 8.8, Industry: domain.IndustryGeneral},
		{ID: 1, Title: "3 Idiots", Genres: "Comedy|Drama", Score: 2e9, Industry: domain.IndustryRegional},
	}, cat.Movies())

	r := New(cat, quiet())

	funny := r.ByMood("Funny", 5, domain.ScopeAll)
	require.Len(t, funny, 1)
	assert.Equal(t, "3 Idiots", funny[0].Title)
	assert.Equal(t, []string{"Comedy", "Drama"}, funny[0].GenreList())

	excited := r.ByMood("Excited", 5, domain.ScopeAll)
	assert.Equal(t, []int{0}, ids(excited))
}

func TestByMood_UnknownMoodEqualsPopular(t *testing.T) {
	r := New(fixture(), quiet())

	for _, mood := range []string{"", "Hangry", "   "} {
		for _, scope := range []domain.Scope{domain.ScopeAll, domain.ScopeGeneral, domain.ScopeRegional} {
			assert.Equal(t, r.Popular(3, scope), r.ByMood(mood, 3, scope), "mood %q scope %s", mood, scope)
		}
	}
}

func TestByMood_Deterministic(t *testing.T) {
	a := New(fixture(), quiet())
	b := New(fixture(), quiet())

	first := a.ByMood("Excited", 10, domain.ScopeAll)
	assert.Equal(t, first, a.ByMood("Excited", 10, domain.ScopeAll))
	assert.Equal(t, first, b.ByMood("Excited", 10, domain.ScopeAll))
}

func TestByMood_MatchesGenresAndScope(t *testing.T) {
	r := New(fixture(), quiet())

	got := r.ByMood("happy", 10, domain.ScopeRegional)

	assert.ElementsMatch(t, []int{4, 6}, ids(got))
	for _, m := range got {
		assert.Equal(t, domain.IndustryRegional, m.Industry)
	}
}

func TestByMood_ReturnsAllWhenNExceedsMatches(t *testing.T) {
	r := New(fixture(), quiet())

	got := r.ByMood("Excited", 100, domain.ScopeAll)

	// Action, Thriller, Sci-Fi and Adventure hit ids 0, 1, 2, 3.
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, ids(got))
}

func TestByMood_DifferentSeedsReorder(t *testing.T) {
	movies := make(movieList, 0, 30)
	for i := range 30 {
		movies = append(movies, domain.Movie{ID: i, Title: "m", Genres: "Drama", Score: float64(i), Industry: domain.IndustryGeneral})
	}

	a := New(movies, quiet(), WithSeed(1)).ByMood("Sad", 30, domain.ScopeAll)
	b := New(movies, quiet(), WithSeed(2)).ByMood("Sad", 30, domain.ScopeAll)

	assert.ElementsMatch(t, ids(a), ids(b))
	assert.NotEqual(t, ids(a), ids(b))
}

func TestPopular_SortedWithStableTies(t *testing.T) {
	r := New(fixture(), quiet())

	got := r.Popular(4, domain.ScopeGeneral)

	// Up and Heat tie at 8.3; Up comes first in the catalog.
	assert.Equal(t, []int{1, 0, 2, 3}, ids(got))
}

func TestPopular_EmptyScope(t *testing.T) {
	src := movieList{{ID: 0, Title: "Inception", Genres: "Action", Score: 8.8, Industry: domain.IndustryGeneral}}
	r := New(src, quiet())

	got := r.Popular(5, domain.ScopeRegional)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, r.ByMood("Happy", 5, domain.ScopeRegional))
	assert.Empty(t, r.Random(5, domain.ScopeRegional))
}

func TestNonPositiveCount(t *testing.T) {
	r := New(fixture(), quiet())

	for _, n := range []int{0, -3} {
		assert.Empty(t, r.ByMood("Happy", n, domain.ScopeAll))
		assert.Empty(t, r.Popular(n, domain.ScopeAll))
		assert.Empty(t, r.Random(n, domain.ScopeAll))
	}
}

func TestRandom_DistinctWithinScope(t *testing.T) {
	r := New(fixture(), quiet())

	got := r.Random(3, domain.ScopeRegional)

	require.Len(t, got, 3)
	seen := map[int]bool{}
	for _, m := range got {
		assert.Equal(t, domain.IndustryRegional, m.Industry)
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}

	all := r.Random(100, domain.ScopeAll)
	assert.Len(t, all, len(fixture()))
}

func TestRandom_UsesInjectedSource(t *testing.T) {
	seeded := func() *rand.Rand { return rand.New(rand.NewPCG(7, 7)) }
	r := New(fixture(), quiet(), WithRandomSource(seeded))

	assert.Equal(t, r.Random(4, domain.ScopeAll), r.Random(4, domain.ScopeAll))
}

func TestNew_BackfillsMissingScoresOnCopy(t *testing.T) {
	src := movieList{
		{ID: 0, Title: "A", Genres: "Drama", ScoreMissing: true, Industry: domain.IndustryGeneral},
		{ID: 1, Title: "B", Genres: "Drama", Score: 3, Industry: domain.IndustryGeneral},
	}

	r := New(src, quiet(), WithBackfillRand(rand.New(rand.NewPCG(1, 1))))

	m, ok := r.Movie(0)
	require.True(t, ok)
	assert.False(t, m.ScoreMissing)
	assert.GreaterOrEqual(t, m.Score, BackfillMin)
	assert.LessOrEqual(t, m.Score, BackfillMax)

	// The source slice is untouched.
	assert.True(t, src[0].ScoreMissing)
	assert.Zero(t, src[0].Score)
}

func TestNew_DoesNotMutateCatalog(t *testing.T) {
	cat := catalog.Sample()
	before := cat.Movies()

	r := New(cat, quiet())
	_ = r.ByMood("Excited", 10, domain.ScopeAll)
	_ = r.Random(10, domain.ScopeAll)

	assert.Equal(t, before, cat.Movies())
}

func TestMoods(t *testing.T) {
	moods := Moods()

	require.Len(t, moods, 12)
	assert.Equal(t, "Happy", moods[0].Name)
	assert.Equal(t, []string{"Comedy", "Adventure", "Family", "Animation"}, moods[0].Genres)
	assert.Equal(t, []string{"Documentary", "Mystery", "Sci-Fi"}, GenresFor(" curious "))
	assert.Nil(t, GenresFor("bored"))

	moods[0].Genres[0] = "changed"
	assert.Equal(t, "Comedy", GenresFor("Happy")[0])

	name, ok := CanonicalMood("ROMANTIC")
	assert.True(t, ok)
	assert.Equal(t, "Romantic", name)
}
