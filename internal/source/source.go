// Package source holds the adapters that feed a fetch run: catalog browse,
// genre search, curated artists, popularity enrichment and news feeds.
// Adapters never fail a run: errors are logged and the adapter contributes
// whatever it has.
package source

import (
	"context"
	"time"

	"github.com/listenupapp/releaseradar/internal/domain"
)

// Adapter produces raw candidate releases for a category.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, category domain.Category) []domain.Release
}

func tag(releases []domain.Release, src domain.Source, scoped bool) []domain.Release {
	for i := range releases {
		releases[i].Source = src
		releases[i].GenreScoped = scoped
	}
	return releases
}

func cutoff(now time.Time, windowDays int) time.Time {
	return now.UTC().AddDate(0, 0, -windowDays)
}
