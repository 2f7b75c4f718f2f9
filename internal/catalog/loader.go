package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cinemood/cinemood-server/internal/domain"
	"github.com/cinemood/cinemood-server/internal/genre"
	"github.com/cinemood/cinemood-server/internal/tabular"
)

// Source names used in errors and logs.
const (
	SourceGeneral  = "general"
	SourceRegional = "regional"
)

// Options configures a Loader.
type Options struct {
	GeneralPath  string
	RegionalPath string

	GeneralColumns  Columns
	RegionalColumns Columns

	Fallback ScoreFallback
	Logger   *slog.Logger
}

// Loader reads both sources and merges them into one Catalog.
type Loader struct {
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a Loader. Empty column lists fall back to the defaults.
func NewLoader(opts Options) *Loader {
	opts.GeneralColumns = opts.GeneralColumns.orDefault(DefaultGeneralColumns())
	opts.RegionalColumns = opts.RegionalColumns.orDefault(DefaultRegionalColumns())
	if opts.Fallback.Policy == "" {
		opts.Fallback.Policy = ScorePolicyZero
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{opts: opts, logger: logger}
}

// sourceRow is one normalized row before an ID is assigned.
type sourceRow struct {
	title   string
	genres  string
	score   float64
	missing bool
}

// generalRow and regionalRow keep the two schemas apart until they are
// converted into domain.Movie.
type (
	generalRow  sourceRow
	regionalRow sourceRow
)

// Load builds the unified catalog. General records take IDs [0, n);
// regional records continue after the highest general ID.
// A missing source aborts the build with a *MissingSourceError.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var stats LoadStats

	genTable, err := l.read(l.opts.GeneralPath, SourceGeneral)
	if err != nil {
		return nil, err
	}
	general := l.generalRows(genTable, &stats)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regTable, err := l.read(l.opts.RegionalPath, SourceRegional)
	if err != nil {
		return nil, err
	}
	regional := l.regionalRows(regTable, &stats)

	movies := make([]domain.Movie, 0, len(general)+len(regional))
	maxID := -1
	for i, r := range general {
		movies = append(movies, domain.Movie{
			ID:           i,
			Title:        r.title,
			Genres:       r.genres,
			Score:        r.score,
			Industry:     domain.IndustryGeneral,
			ScoreMissing: r.missing,
		})
		maxID = i
	}

	base := maxID + 1
	for i, r := range regional {
		movies = append(movies, domain.Movie{
			ID:           base + i,
			Title:        r.title,
			Genres:       r.genres,
			Score:        r.score,
			Industry:     domain.IndustryRegional,
			ScoreMissing: r.missing,
		})
	}

	l.logger.Info("catalog loaded",
		"general_rows", stats.GeneralRows,
		"general_kept", stats.GeneralKept,
		"regional_rows", stats.RegionalRows,
		"regional_kept", stats.RegionalKept,
		"filled", stats.Filled,
		"unscored", stats.Unscored,
	)

	return New(movies, stats), nil
}

func (l *Loader) read(path, source string) (*tabular.Table, error) {
	t, err := tabular.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &MissingSourceError{Path: path, Source: source, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s source %s: %w", source, path, err)
	}
	return t, nil
}

func (l *Loader) generalRows(t *tabular.Table, stats *LoadStats) []generalRow {
	rows := l.normalize(t, l.opts.GeneralColumns, parseScore, SourceGeneral, stats)
	stats.GeneralRows = t.Len()
	stats.GeneralKept = len(rows)

	out := make([]generalRow, len(rows))
	for i, r := range rows {
		out[i] = generalRow(r)
	}
	return out
}

func (l *Loader) regionalRows(t *tabular.Table, stats *LoadStats) []regionalRow {
	rows := l.normalize(t, l.opts.RegionalColumns, parseMoney, SourceRegional, stats)
	stats.RegionalRows = t.Len()
	stats.RegionalKept = len(rows)

	out := make([]regionalRow, len(rows))
	for i, r := range rows {
		out[i] = regionalRow(r)
	}
	return out
}

// normalize resolves columns once, then repairs or drops each row.
// Rows without a title are dropped. Missing genres become "".
// Unparseable scores go through the fallback policy.
func (l *Loader) normalize(
	t *tabular.Table,
	cols Columns,
	parse func(string) (float64, bool),
	source string,
	stats *LoadStats,
) []sourceRow {
	titleCol := t.Column(cols.Title...)
	genreCol := t.Column(cols.Genre...)
	scoreCol := t.Column(cols.Score...)

	if titleCol < 0 {
		l.logger.Warn("no title column found, every row will be dropped",
			"source", source, "aliases", cols.Title)
	}
	if genreCol < 0 {
		l.logger.Debug("no genre column found", "source", source, "aliases", cols.Genre)
	}
	if scoreCol < 0 {
		l.logger.Debug("no score column found", "source", source, "aliases", cols.Score)
	}

	out := make([]sourceRow, 0, t.Len())
	for r := range t.Len() {
		title, ok := t.Cell(r, titleCol)
		if !ok {
			continue
		}

		g, _ := t.Cell(r, genreCol)
		row := sourceRow{title: title, genres: genre.FromSource(g)}

		raw, _ := t.Cell(r, scoreCol)
		if v, ok := parse(raw); ok {
			row.score = v
		} else if v, ok := l.opts.Fallback.fill(); ok {
			row.score = v
			stats.Filled++
		} else {
			row.missing = true
			stats.Unscored++
		}

		out = append(out, row)
	}
	return out
}
