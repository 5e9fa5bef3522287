package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/genre"
)

// PopularitySource looks up a release's full catalog record by ID. Enrichment
// reads its popularity (0-100) and track count.
type PopularitySource interface {
	FullRelease(ctx context.Context, releaseID string) (domain.Release, error)
}

// GenreSource returns an artist's genre tags.
type GenreSource interface {
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)
}

// Filter applies, in order: date parse, recency window, popularity floor,
// genre keywords, popularity ranking.
type Filter struct {
	popularity PopularitySource
	genres     GenreSource
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Filter) { f.now = now }
}

// NewFilter creates a filter. popularity may be nil, in which case releases
// without a score are treated as 0.
func NewFilter(popularity PopularitySource, genres GenreSource, logger *slog.Logger, opts ...Option) *Filter {
	f := &Filter{
		popularity: popularity,
		genres:     genres,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply filters set against criteria and returns every survivor ranked by
// popularity descending. Ties keep first-seen order. The input set is not
// modified; enrichment is applied to the returned copies.
func (f *Filter) Apply(ctx context.Context, set *domain.CandidateSet, criteria domain.FilterCriteria) []domain.Release {
	cutoff := f.cutoff(criteria.WindowDays)
	candidates := set.Releases()
	kept := make([]domain.Release, 0, len(candidates))

	for _, r := range candidates {
		date, err := domain.ParseReleaseDate(r.ReleaseDate)
		if err != nil {
			f.logger.Info("dropping release with bad date",
				"release", r.Name,
				"id", r.ID,
				"release_date", r.ReleaseDate,
				"error", err,
			)
			continue
		}

		if date.Time.Before(cutoff) {
			continue
		}

		if !f.enrich(ctx, &r) {
			continue
		}
		if r.PopularityOrZero() < criteria.MinPopularity {
			continue
		}

		if !f.genreAllowed(ctx, &r, criteria) {
			continue
		}

		kept = append(kept, r)
	}

	slices.SortStableFunc(kept, func(a, b domain.Release) int {
		return b.PopularityOrZero() - a.PopularityOrZero()
	})

	f.logger.Debug("filter complete",
		"candidates", len(candidates),
		"kept", len(kept),
		"window_days", criteria.WindowDays,
		"min_popularity", criteria.MinPopularity,
	)

	return kept
}

// cutoff is exactly windowDays before now.
func (f *Filter) cutoff(windowDays int) time.Time {
	return f.now().UTC().AddDate(0, 0, -windowDays)
}

// enrich fills in popularity, and the track count when unknown, for releases
// listed without a score. A failed lookup drops the release.
func (f *Filter) enrich(ctx context.Context, r *domain.Release) bool {
	if r.Popularity != nil || f.popularity == nil {
		return true
	}

	full, err := f.popularity.FullRelease(ctx, r.ID)
	if err != nil {
		f.logger.Warn("popularity lookup failed, dropping release",
			"release", r.Name,
			"id", r.ID,
			"error", err,
		)
		return false
	}
	r.SetPopularity(full.PopularityOrZero())
	if r.TotalTracks == 0 {
		r.TotalTracks = full.TotalTracks
	}
	return true
}

// genreAllowed checks the primary artist's tags against the keywords. Missing
// tags and failed lookups both let the release through; a release with no
// artist to look up does not.
func (f *Filter) genreAllowed(ctx context.Context, r *domain.Release, criteria domain.FilterCriteria) bool {
	if criteria.TrustGenreScoped && r.GenreScoped {
		return true
	}
	if len(criteria.Keywords) == 0 || f.genres == nil {
		return true
	}

	artist := r.PrimaryArtist()
	if artist.ID == "" {
		f.logger.Debug("no artist for genre check, dropping release", "release", r.Name, "id", r.ID)
		return false
	}

	tags, err := f.genres.ArtistGenres(ctx, artist.ID)
	if err != nil {
		f.logger.Warn("genre lookup failed, including release",
			"release", r.Name,
			"artist", artist.Name,
			"error", err,
		)
		return true
	}
	if len(tags) == 0 {
		f.logger.Debug("no genre tags, including release", "release", r.Name, "artist", artist.Name)
		return true
	}

	ok := genre.MatchesAny(tags, criteria.Keywords)
	f.logger.Debug("genre check",
		"release", r.Name,
		"artist", artist.Name,
		"tags", strings.Join(tags, ","),
		"matched", ok,
	)
	return ok
}
