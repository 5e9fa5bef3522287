package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/store"
)

func (s *Server) registerSnapshotRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSnapshot",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshot",
		Summary:     "Latest snapshot",
		Description: "Returns every category and the news list from the latest fetch run",
		Tags:        []string{"Snapshots"},
	}, s.handleGetSnapshot)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategoryReleases",
		Method:      http.MethodGet,
		Path:        "/api/v1/releases/{category}",
		Summary:     "Category releases",
		Description: "Returns the ranked releases of one category from the latest fetch run",
		Tags:        []string{"Snapshots"},
	}, s.handleGetCategoryReleases)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNews",
		Method:      http.MethodGet,
		Path:        "/api/v1/news",
		Summary:     "News",
		Description: "Returns news items from the latest fetch run, newest first",
		Tags:        []string{"Snapshots"},
	}, s.handleGetNews)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSnapshots",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshots",
		Summary:     "Snapshot history",
		Description: "Lists stored fetch runs, newest first. Requires a cache path.",
		Tags:        []string{"Snapshots"},
	}, s.handleListSnapshots)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSnapshotByRun",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshots/{run_id}",
		Summary:     "Snapshot by run",
		Description: "Returns the snapshot stored for a past fetch run",
		Tags:        []string{"Snapshots"},
	}, s.handleGetSnapshotByRun)
}

// SnapshotResponse is a full snapshot in API responses.
type SnapshotResponse struct {
	RunID       string                    `json:"run_id" doc:"Fetch run identifier"`
	LastUpdated time.Time                 `json:"last_updated" doc:"When the fetch run started"`
	Demo        bool                      `json:"demo" doc:"True when the run had no catalog credentials"`
	Categories  []domain.CategoryReleases `json:"categories" doc:"Categories in configured order"`
	News        []domain.NewsRecord       `json:"news" doc:"News items, newest first"`
}

// SnapshotOutput wraps a snapshot for Huma.
type SnapshotOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         SnapshotResponse
}

func newSnapshotOutput(snap *domain.Snapshot, cacheControl string) *SnapshotOutput {
	out := &SnapshotOutput{CacheControl: cacheControl, Body: SnapshotResponse{
		RunID:       snap.RunID,
		LastUpdated: snap.LastUpdated,
		Demo:        snap.Demo,
		Categories:  snap.Categories,
		News:        snap.News,
	}}
	if out.Body.Categories == nil {
		out.Body.Categories = []domain.CategoryReleases{}
	}
	if out.Body.News == nil {
		out.Body.News = []domain.NewsRecord{}
	}
	return out
}

func (s *Server) handleGetSnapshot(ctx context.Context, _ *struct{}) (*SnapshotOutput, error) {
	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return newSnapshotOutput(snap, CacheSnapshot), nil
}

// CategoryInput identifies a category.
type CategoryInput struct {
	Category string `path:"category" doc:"Category key, e.g. hiphop"`
	Limit    int    `query:"limit" minimum:"0" maximum:"200" doc:"Maximum releases to return; 0 returns all"`
}

// CategoryResponse is one category in API responses.
type CategoryResponse struct {
	Key         string                 `json:"key" doc:"Category key"`
	Label       string                 `json:"label" doc:"Display label"`
	RunID       string                 `json:"run_id" doc:"Fetch run the releases come from"`
	LastUpdated time.Time              `json:"last_updated" doc:"When the fetch run started"`
	Releases    []domain.ReleaseRecord `json:"releases" doc:"Releases ranked by popularity"`
}

// CategoryOutput wraps a category for Huma.
type CategoryOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         CategoryResponse
}

func (s *Server) handleGetCategoryReleases(ctx context.Context, input *CategoryInput) (*CategoryOutput, error) {
	c, snap, err := s.snapshots.Category(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	releases := c.Releases
	if input.Limit > 0 && len(releases) > input.Limit {
		releases = releases[:input.Limit]
	}
	if releases == nil {
		releases = []domain.ReleaseRecord{}
	}

	return &CategoryOutput{CacheControl: CacheSnapshot, Body: CategoryResponse{
		Key:         c.Key,
		Label:       c.Label,
		RunID:       snap.RunID,
		LastUpdated: snap.LastUpdated,
		Releases:    releases,
	}}, nil
}

// NewsInput bounds the news list.
type NewsInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"100" doc:"Maximum items to return; 0 returns all"`
}

// NewsResponse lists news items.
type NewsResponse struct {
	Items []domain.NewsRecord `json:"items" doc:"News items, newest first"`
}

// NewsOutput wraps news for Huma.
type NewsOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         NewsResponse
}

func (s *Server) handleGetNews(ctx context.Context, input *NewsInput) (*NewsOutput, error) {
	items, err := s.snapshots.News(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.NewsRecord{}
	}
	return &NewsOutput{CacheControl: CacheSnapshot, Body: NewsResponse{Items: items}}, nil
}

// HistoryInput bounds the history list.
type HistoryInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum runs to return"`
}

// HistoryResponse lists stored runs.
type HistoryResponse struct {
	Runs []store.SnapshotSummary `json:"runs" doc:"Stored runs, newest first"`
}

// HistoryOutput wraps history for Huma.
type HistoryOutput struct {
	Body HistoryResponse
}

func (s *Server) handleListSnapshots(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	runs, err := s.snapshots.History(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []store.SnapshotSummary{}
	}
	return &HistoryOutput{Body: HistoryResponse{Runs: runs}}, nil
}

// RunInput identifies a stored run.
type RunInput struct {
	RunID string `path:"run_id" doc:"Fetch run identifier"`
}

func (s *Server) handleGetSnapshotByRun(ctx context.Context, input *RunInput) (*SnapshotOutput, error) {
	snap, err := s.snapshots.Get(ctx, input.RunID)
	if err != nil {
		return nil, err
	}
	return newSnapshotOutput(snap, CacheHistory), nil
}
