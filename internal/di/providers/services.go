package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/applemusic"
	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/errors"
	"github.com/listenupapp/releaseradar/internal/feed"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/output"
	"github.com/listenupapp/releaseradar/internal/resolver"
	"github.com/listenupapp/releaseradar/internal/roster"
	"github.com/listenupapp/releaseradar/internal/service"
	"github.com/listenupapp/releaseradar/internal/source"
)

// ProvideRoster loads the roster file. No path, or a path that does not exist,
// yields the built-in categories and feeds with no curated artists.
func ProvideRoster(i do.Injector) (*roster.Roster, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Paths.RosterPath == "" {
		log.Info("No roster configured, using default categories")
		return roster.Default(), nil
	}

	r, err := roster.Load(cfg.Paths.RosterPath)
	if errors.CodeOf(err) == errors.CodeConfiguration {
		log.Warn("Roster file missing, using default categories", "path", cfg.Paths.RosterPath)
		return roster.Default(), nil
	}
	if err != nil {
		return nil, err
	}

	log.Info("Roster loaded",
		"path", cfg.Paths.RosterPath,
		"categories", len(r.Categories),
		"artists", r.ArtistCount(),
		"feeds", len(r.Feeds),
	)
	return r, nil
}

// ProvideAggregator provides the fetch pipeline.
func ProvideAggregator(i do.Injector) (*service.Aggregator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[catalog.TokenProvider](i)
	newCatalog := do.MustInvoke[service.CatalogFactory](i)
	appleMusic := do.MustInvoke[*applemusic.Client](i)
	feeds := do.MustInvoke[*feed.Reader](i)
	r := do.MustInvoke[*roster.Roster](i)

	sinks := output.Multi{output.NewFileSink(cfg.Paths.OutputPath)}
	deps := service.AggregatorDeps{
		Tokens:     tokens,
		NewCatalog: newCatalog,
		Searcher:   appleMusic,
		Feeds:      feeds,
		Roster:     r,
		Logger:     log,
	}
	if storeHandle.Enabled() {
		deps.Genres = storeHandle.Store
		sinks = append(sinks, output.NewStoreSink(storeHandle.Store))
	}
	deps.Sink = sinks

	return service.NewAggregator(deps, service.AggregatorConfig{
		Market:        cfg.Spotify.Market,
		WindowDays:    cfg.Pipeline.WindowDays,
		MinPopularity: cfg.Pipeline.MinPopularity,
		BrowseLimit:   cfg.Pipeline.BrowseLimit,
		SearchLimit:   cfg.Pipeline.SearchLimit,
		News: source.NewsOptions{
			WindowDays: cfg.Pipeline.NewsWindowDays,
			PerFeed:    cfg.Pipeline.NewsPerFeed,
			Limit:      cfg.Pipeline.NewsLimit,
		},
		Policy:     resolver.Policy(cfg.Pipeline.ResolvePolicy),
		Storefront: appleMusic.Storefront(),
	}), nil
}

// ProvideSnapshotService provides read access to published snapshots.
func ProvideSnapshotService(i do.Injector) (*service.SnapshotService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	var history service.SnapshotHistory
	if storeHandle.Enabled() {
		history = storeHandle.Store
	}
	return service.NewSnapshotService(history, cfg.Paths.OutputPath, log.WithComponent("snapshots")), nil
}
