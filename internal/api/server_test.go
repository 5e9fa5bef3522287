package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/releaseradar/internal/domain"
	domainerrors "github.com/listenupapp/releaseradar/internal/errors"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/store"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type testEnvelope[T any] struct {
	Version int       `json:"v"`
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
}

type fakeSnapshots struct {
	latest  *domain.Snapshot
	history []store.SnapshotSummary
	runs    map[string]*domain.Snapshot
}

func (f *fakeSnapshots) Latest(context.Context) (*domain.Snapshot, error) {
	if f.latest == nil {
		return nil, domainerrors.NotFound("no snapshot has been published")
	}
	return f.latest, nil
}

func (f *fakeSnapshots) Get(_ context.Context, runID string) (*domain.Snapshot, error) {
	if f.runs == nil {
		return nil, domainerrors.Unavailable("snapshot history is not enabled")
	}
	snap, ok := f.runs[runID]
	if !ok {
		return nil, domainerrors.NotFoundf("snapshot %s not found", runID)
	}
	return snap, nil
}

func (f *fakeSnapshots) Category(ctx context.Context, key string) (*domain.CategoryReleases, *domain.Snapshot, error) {
	snap, err := f.Latest(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, ok := snap.Category(key)
	if !ok {
		return nil, nil, domainerrors.NotFoundf("category %q not found", key)
	}
	return &c, snap, nil
}

func (f *fakeSnapshots) News(ctx context.Context, limit int) ([]domain.NewsRecord, error) {
	snap, err := f.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(snap.News) > limit {
		return snap.News[:limit], nil
	}
	return snap.News, nil
}

func (f *fakeSnapshots) History(context.Context, int) ([]store.SnapshotSummary, error) {
	if f.runs == nil {
		return nil, domainerrors.Unavailable("snapshot history is not enabled")
	}
	return f.history, nil
}

func (f *fakeSnapshots) HistoryEnabled() bool { return f.runs != nil }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		RunID:       "run-1",
		LastUpdated: testNow.Add(-time.Hour),
		Categories: []domain.CategoryReleases{
			{Key: "hiphop", Label: "Hip Hop", Releases: []domain.ReleaseRecord{
				{ID: "a", Name: "GNX", Artists: "Kendrick Lamar", Popularity: 90},
				{ID: "b", Name: "Other", Artists: "Someone", Popularity: 40},
			}},
			{Key: "rock", Label: "Rock"},
		},
		News: []domain.NewsRecord{
			{Title: "one", Link: "https://x/1"},
			{Title: "two", Link: "https://x/2"},
		},
	}
}

func newTestServer(t *testing.T, snaps Snapshots, pinger Pinger, opts Options) humatest.TestAPI {
	t.Helper()
	s := NewServer(snaps, pinger, opts, logger.Discard())
	s.now = func() time.Time { return testNow }
	t.Cleanup(s.Close)
	return humatest.Wrap(t, s.API())
}

func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestGetSnapshot(t *testing.T) {
	api := newTestServer(t, &fakeSnapshots{latest: sampleSnapshot()}, nil, Options{})

	resp := api.Get("/api/v1/snapshot")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, CacheSnapshot, resp.Header().Get("Cache-Control"))

	env := decode[SnapshotResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.Equal(t, "run-1", env.Data.RunID)
	require.Len(t, env.Data.Categories, 2)
	assert.Equal(t, "hiphop", env.Data.Categories[0].Key)
	assert.Len(t, env.Data.News, 2)
}

func TestGetSnapshot_NonePublished(t *testing.T) {
	api := newTestServer(t, &fakeSnapshots{}, nil, Options{})

	resp := api.Get("/api/v1/snapshot")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(domainerrors.CodeNotFound), env.Error.Code)
}

func TestGetCategoryReleases(t *testing.T) {
	api := newTestServer(t, &fakeSnapshots{latest: sampleSnapshot()}, nil, Options{})

	resp := api.Get("/api/v1/releases/hiphop?limit=1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[CategoryResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Hip Hop", env.Data.Label)
	assert.Equal(t, "run-1", env.Data.RunID)
	require.Len(t, env.Data.Releases, 1)
	assert.Equal(t, "GNX", env.Data.Releases[0].Name)

	resp = api.Get("/api/v1/releases/rock")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"releases":[]`)

	resp = api.Get("/api/v1/releases/jazz")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetNews(t *testing.T) {
	api := newTestServer(t, &fakeSnapshots{latest: sampleSnapshot()}, nil, Options{})

	resp := api.Get("/api/v1/news?limit=1")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[NewsResponse](t, resp.Body.Bytes())
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "one", env.Data.Items[0].Title)

	resp = api.Get("/api/v1/news?limit=-1")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSnapshotHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		api := newTestServer(t, &fakeSnapshots{latest: sampleSnapshot()}, nil, Options{})

		resp := api.Get("/api/v1/snapshots")
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		env := decode[any](t, resp.Body.Bytes())
		assert.Equal(t, string(domainerrors.CodeUnavailable), env.Error.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		snap := sampleSnapshot()
		snaps := &fakeSnapshots{
			latest:  snap,
			runs:    map[string]*domain.Snapshot{"run-1": snap},
			history: []store.SnapshotSummary{{RunID: "run-1", Releases: 2, News: 2}},
		}
		api := newTestServer(t, snaps, nil, Options{})

		resp := api.Get("/api/v1/snapshots")
		require.Equal(t, http.StatusOK, resp.Code)
		env := decode[HistoryResponse](t, resp.Body.Bytes())
		require.Len(t, env.Data.Runs, 1)
		assert.Equal(t, 2, env.Data.Runs[0].Releases)

		resp = api.Get("/api/v1/snapshots/run-1")
		require.Equal(t, http.StatusOK, resp.Code)

		resp = api.Get("/api/v1/snapshots/missing")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		snaps     *fakeSnapshots
		pinger    Pinger
		want      string
		component string
	}{
		{name: "fresh snapshot", snaps: &fakeSnapshots{latest: sampleSnapshot()}, want: "healthy"},
		{name: "no snapshot", snaps: &fakeSnapshots{}, want: "degraded"},
		{
			name:  "demo snapshot",
			snaps: &fakeSnapshots{latest: &domain.Snapshot{Demo: true, LastUpdated: testNow}},
			want:  "degraded",
		},
		{
			name:  "stale snapshot",
			snaps: &fakeSnapshots{latest: &domain.Snapshot{LastUpdated: testNow.Add(-72 * time.Hour)}},
			want:  "degraded",
		},
		{
			name:      "store down",
			snaps:     &fakeSnapshots{latest: sampleSnapshot()},
			pinger:    fakePinger{err: errors.New("closed")},
			want:      "unhealthy",
			component: "store",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestServer(t, tt.snaps, tt.pinger, Options{})

			resp := api.Get("/health")
			require.Equal(t, http.StatusOK, resp.Code)

			env := decode[HealthResponse](t, resp.Body.Bytes())
			assert.Equal(t, tt.want, env.Data.Status)
			assert.Contains(t, env.Data.Components, "snapshot")
			if tt.component != "" {
				assert.Equal(t, tt.want, env.Data.Components[tt.component].Status)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	api := newTestServer(t, &fakeSnapshots{latest: sampleSnapshot()}, nil, Options{RequestsPerMinute: 1, Burst: 1})

	resp := api.Get("/api/v1/news")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/news")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	env := decode[any](t, resp.Body.Bytes())
	assert.Equal(t, string(domainerrors.CodeRateLimited), env.Error.Code)
}

func TestGetClientIP(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", getClientIP(r))

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", getClientIP(r))
}
