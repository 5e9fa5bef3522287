package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
)

// ArtistLister returns the curated artist names for a category, in order.
type ArtistLister interface {
	Artists(category string) []string
}

// Curated lists recent releases by hand-picked artists. The roster encodes
// genre, so results are genre-scoped and only the recency window is applied.
type Curated struct {
	catalog    catalog.Catalog
	roster     ArtistLister
	windowDays int
	now        func() time.Time
	logger     *slog.Logger
}

// NewCurated creates a curated-artist adapter. roster may be nil.
func NewCurated(c catalog.Catalog, roster ArtistLister, windowDays int, now func() time.Time, logger *slog.Logger) *Curated {
	if now == nil {
		now = time.Now
	}
	return &Curated{catalog: c, roster: roster, windowDays: windowDays, now: now, logger: logger}
}

// Name implements Adapter.
func (c *Curated) Name() string { return string(domain.SourceCurated) }

// Fetch implements Adapter.
func (c *Curated) Fetch(ctx context.Context, category domain.Category) []domain.Release {
	if c.roster == nil {
		return nil
	}
	names := c.roster.Artists(category.Key)
	if len(names) == 0 {
		return nil
	}

	since := cutoff(c.now(), c.windowDays)
	var out []domain.Release

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		artist, err := c.catalog.SearchArtist(ctx, name)
		if err != nil {
			c.logger.Warn("curated artist lookup failed", "artist", name, "category", category.Key, "error", err)
			continue
		}

		releases, err := c.catalog.ArtistReleases(ctx, artist.ID)
		if err != nil {
			c.logger.Warn("curated artist releases failed", "artist", name, "artist_id", artist.ID, "error", err)
			continue
		}

		kept := 0
		for _, r := range releases {
			// Unparseable dates pass through; the filter drops and logs them.
			if d, err := domain.ParseReleaseDate(r.ReleaseDate); err == nil && d.Time.Before(since) {
				continue
			}
			out = append(out, r)
			kept++
		}
		c.logger.Debug("curated artist releases", "artist", name, "total", len(releases), "recent", kept)
	}

	return tag(out, domain.SourceCurated, true)
}
