// Package recommend ranks catalog movies for a mood.
package recommend

import (
	"cmp"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/genre"
)

// Defaults.
const (
	DefaultSeed = 42
	BackfillMin = 1.0
	BackfillMax = 10.0
)

// Source supplies the records to recommend from.
type Source interface {
	Movies() []domain.Movie
}

// Recommender answers mood, popularity and random queries over a fixed
// set of movies. It is safe for concurrent use; nothing is mutated after New.
type Recommender struct {
	movies []domain.Movie
	byID   map[int]int
	logger *slog.Logger

	seed        uint64
	backfillMin float64
	backfillMax float64
	backfillRNG *rand.Rand
	newRand     func() *rand.Rand
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLogger sets the logger used for fallback messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recommender) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSeed sets the seed for the mood-ranking shuffle.
func WithSeed(seed uint64) Option {
	return func(r *Recommender) { r.seed = seed }
}

// WithBackfillRange sets the interval used to fill unset scores.
// Ignored when max <= min.
func WithBackfillRange(minScore, maxScore float64) Option {
	return func(r *Recommender) {
		if maxScore > minScore {
			r.backfillMin, r.backfillMax = minScore, maxScore
		}
	}
}

// WithBackfillRand sets the generator used to fill unset scores.
func WithBackfillRand(rng *rand.Rand) Option {
	return func(r *Recommender) { r.backfillRNG = rng }
}

// WithRandomSource sets the generator factory used by Random.
// The factory is called once per Random call.
func WithRandomSource(fn func() *rand.Rand) Option {
	return func(r *Recommender) {
		if fn != nil {
			r.newRand = fn
		}
	}
}

// New copies the source's movies and backfills any unset score uniformly
// in the backfill range. The source itself is never modified.
func New(src Source, opts ...Option) *Recommender {
	r := &Recommender{
		logger:      slog.Default(),
		seed:        DefaultSeed,
		backfillMin: BackfillMin,
		backfillMax: BackfillMax,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.backfillRNG == nil {
		r.backfillRNG = r.newRand()
	}

	r.movies = src.Movies()
	r.byID = make(map[int]int, len(r.movies))
	filled := 0
	for i := range r.movies {
		r.byID[r.movies[i].ID] = i
		if !r.movies[i].ScoreMissing {
			continue
		}
		r.movies[i].Score = r.backfillMin + r.backfillRNG.Float64()*(r.backfillMax-r.backfillMin)
		r.movies[i].ScoreMissing = false
		filled++
	}
	if filled > 0 {
		r.logger.Info("backfilled missing scores", "count", filled,
			"min", r.backfillMin, "max", r.backfillMax)
	}

	return r
}

// Len returns the number of movies available to the recommender.
func (r *Recommender) Len() int {
	return len(r.movies)
}

// Movie returns the recommender's copy of the movie with the given ID.
func (r *Recommender) Movie(movieID int) (domain.Movie, bool) {
	i, ok := r.byID[movieID]
	if !ok {
		return domain.Movie{}, false
	}
	return r.movies[i], true
}

// ByMood returns up to n movies whose genres mention any genre mapped to
// mood, restricted to scope. Results are sorted by score and then shuffled
// with a fixed seed, so the same catalog and arguments always give the
// same list. Unknown moods and empty matches fall back to Popular.
func (r *Recommender) ByMood(mood string, n int, scope domain.Scope) []domain.Movie {
	if n <= 0 {
		return []domain.Movie{}
	}

	genres := GenresFor(mood)
	if len(genres) == 0 {
		r.logger.Info("no genres mapped for mood, using popular", "mood", mood)
		return r.Popular(n, scope)
	}

	m := genre.NewMatcher(genres)
	matched := make([]domain.Movie, 0)
	for i := range r.movies {
		mv := &r.movies[i]
		if scope.Includes(mv.Industry) && m.Match(mv.Genres) {
			matched = append(matched, *mv)
		}
	}

	if len(matched) == 0 {
		r.logger.Info("no movies matched mood, using popular", "mood", mood, "scope", scope)
		return r.Popular(n, scope)
	}

	sortByScore(matched)
	rng := rand.New(rand.NewPCG(r.seed, r.seed))
	rng.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})

	return head(matched, n)
}

// Popular returns the n highest-scored movies in scope. Ties keep
// catalog order. An empty scope yields an empty list.
func (r *Recommender) Popular(n int, scope domain.Scope) []domain.Movie {
	if n <= 0 {
		return []domain.Movie{}
	}

	pool := domain.FilterScope(r.movies, scope)
	if len(pool) == 0 {
		r.logger.Info("no movies for scope", "scope", scope)
		return []domain.Movie{}
	}

	sortByScore(pool)
	return head(pool, n)
}

// Random returns min(n, available) distinct movies from scope, drawn
// with a fresh generator on every call.
func (r *Recommender) Random(n int, scope domain.Scope) []domain.Movie {
	if n <= 0 {
		return []domain.Movie{}
	}

	pool := domain.FilterScope(r.movies, scope)
	if len(pool) == 0 {
		return []domain.Movie{}
	}

	k := min(n, len(pool))
	rng := r.newRand()
	// Partial Fisher-Yates: the first k slots end up a uniform sample.
	for i := range k {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

func sortByScore(movies []domain.Movie) {
	slices.SortStableFunc(movies, func(a, b domain.Movie) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

func head(movies []domain.Movie, n int) []domain.Movie {
	if n < len(movies) {
		return movies[:n:n]
	}
	return movies
}
