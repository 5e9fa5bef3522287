package service

import (
	"context"
	"fmt"
	"time"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/id"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/output"
	"github.com/listenupapp/releaseradar/internal/pipeline"
	"github.com/listenupapp/releaseradar/internal/resolver"
	"github.com/listenupapp/releaseradar/internal/roster"
	"github.com/listenupapp/releaseradar/internal/source"
)

// CatalogFactory builds a catalog client bound to a run's session.
type CatalogFactory func(ctx context.Context, session *catalog.Session) catalog.Catalog

// AggregatorConfig tunes a fetch run.
type AggregatorConfig struct {
	Market        string
	WindowDays    int
	MinPopularity int
	BrowseLimit   int
	SearchLimit   int
	News          source.NewsOptions
	Policy        resolver.Policy
	Storefront    string
}

// AggregatorDeps are the collaborators of a fetch run. Genres and Sink may be nil.
type AggregatorDeps struct {
	Tokens     catalog.TokenProvider
	NewCatalog CatalogFactory
	Searcher   resolver.Searcher
	Feeds      source.FeedReader
	Roster     *roster.Roster
	Genres     GenreCache
	Sink       output.Sink
	Logger     *logger.Logger
	Now        func() time.Time
}

// Aggregator runs the fetch pipeline: per category it gathers candidates from
// every adapter, merges, filters, ranks and resolves them, then reads news.
type Aggregator struct {
	deps AggregatorDeps
	cfg  AggregatorConfig
}

// NewAggregator creates an aggregator.
func NewAggregator(deps AggregatorDeps, cfg AggregatorConfig) *Aggregator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Roster == nil {
		deps.Roster = roster.Default()
	}
	return &Aggregator{deps: deps, cfg: cfg}
}

// Run executes one fetch run and hands the snapshot to the sink. Source
// failures only shrink the result; the returned error is reserved for
// failing to write the snapshot.
func (a *Aggregator) Run(ctx context.Context) (*domain.Snapshot, error) {
	runID := id.NewRunID()
	log := a.deps.Logger.WithRun(runID)
	started := a.deps.Now()
	categories := a.deps.Roster.CategoryList()

	log.Info("fetch run started",
		"categories", len(categories),
		"curated_artists", a.deps.Roster.ArtistCount(),
		"policy", string(a.cfg.Policy),
	)

	session, err := catalog.OpenSession(ctx, a.deps.Tokens, a.cfg.Market)
	if err != nil {
		log.Warn("catalog token request failed, publishing demo data", "error", err)
	}

	var snap *domain.Snapshot
	if session == nil {
		if err == nil {
			log.Warn("no catalog credentials configured, publishing demo data")
		}
		snap = DemoSnapshot(categories, started)
	} else {
		snap = a.collect(ctx, log, session, categories)
	}
	snap.RunID = runID
	snap.LastUpdated = started

	log.Info("fetch run finished",
		"demo", snap.Demo,
		"releases", snap.ReleaseCount(),
		"news", len(snap.News),
		"duration", a.deps.Now().Sub(started).String(),
	)

	if a.deps.Sink != nil {
		if err := a.deps.Sink.Write(ctx, snap); err != nil {
			return snap, fmt.Errorf("write snapshot: %w", err)
		}
	}
	return snap, nil
}

func (a *Aggregator) collect(ctx context.Context, log *logger.Logger, session *catalog.Session, categories []domain.Category) *domain.Snapshot {
	cat := a.deps.NewCatalog(ctx, session)

	browse := source.NewBrowse(cat, a.cfg.BrowseLimit, log.WithComponent("browse"))
	search := source.NewSearch(cat, a.cfg.SearchLimit, a.deps.Now, log.WithComponent("search"))
	curated := source.NewCurated(cat, a.deps.Roster, a.cfg.WindowDays, a.deps.Now, log.WithComponent("curated"))

	genres := NewGenreService(cat, a.deps.Genres, log.WithComponent("genre"))
	filter := pipeline.NewFilter(source.NewEnricher(cat), genres, log.WithComponent("filter"), pipeline.WithClock(a.deps.Now))
	res := resolver.New(a.deps.Searcher, a.cfg.Policy, a.cfg.Storefront, log.WithComponent("resolver"))

	// Browse is category-agnostic, so one call serves every category.
	newest := browse.Fetch(ctx, domain.Category{})

	snap := &domain.Snapshot{}
	for _, c := range categories {
		if ctx.Err() != nil {
			log.Warn("fetch run cancelled", "error", ctx.Err())
			break
		}

		set := pipeline.Merge(
			curated.Fetch(ctx, c),
			search.Fetch(ctx, c),
			newest,
		)
		criteria := domain.NewFilterCriteria(a.cfg.WindowDays, c.Keywords, a.cfg.MinPopularity, true)
		ranked := filter.Apply(ctx, set, criteria)

		records := make([]domain.ReleaseRecord, 0, len(ranked))
		matched := 0
		for i := range ranked {
			result := res.ResolveDetail(ctx, ranked[i])
			ranked[i].AppleMusicURL = result.URL
			if result.Matched {
				matched++
			}
			records = append(records, ranked[i].Record())
		}

		log.Info("category complete",
			"category", c.Key,
			"candidates", set.Len(),
			"releases", len(records),
			"resolved", matched,
		)

		snap.Categories = append(snap.Categories, domain.CategoryReleases{
			Key:      c.Key,
			Label:    c.Label,
			Releases: records,
		})
	}

	news := source.NewNews(a.deps.Feeds, a.deps.Roster.FeedList(), a.cfg.News, a.deps.Now, log.WithComponent("news"))
	for _, item := range news.Fetch(ctx) {
		snap.News = append(snap.News, item.Record())
	}

	return snap
}
