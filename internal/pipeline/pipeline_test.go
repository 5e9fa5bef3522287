package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/logger"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type fakePopularity struct {
	scores map[string]int
	tracks map[string]int
	fail   map[string]bool
	calls  int
}

func (f *fakePopularity) FullRelease(_ context.Context, id string) (domain.Release, error) {
	f.calls++
	if f.fail[id] {
		return domain.Release{}, errors.New("lookup failed")
	}
	r := domain.Release{ID: id, TotalTracks: f.tracks[id]}
	r.SetPopularity(f.scores[id])
	return r, nil
}

type fakeGenres struct {
	tags map[string][]string
	fail map[string]bool
}

func (f *fakeGenres) ArtistGenres(_ context.Context, id string) ([]string, error) {
	if f.fail[id] {
		return nil, errors.New("lookup failed")
	}
	return f.tags[id], nil
}

func release(id, date string, pop int, artistID string) domain.Release {
	r := domain.Release{
		ID:          id,
		Name:        "Release " + id,
		ReleaseDate: date,
		Artists:     []domain.Artist{{ID: artistID, Name: "Artist " + artistID}},
	}
	if pop >= 0 {
		r.SetPopularity(pop)
	}
	return r
}

func newTestFilter(pop PopularitySource, genres GenreSource) *Filter {
	return NewFilter(pop, genres, logger.Discard(), WithClock(func() time.Time { return fixedNow }))
}

func TestMerge_FirstSeenWins(t *testing.T) {
	curated := []domain.Release{{ID: "a", Name: "curated", Source: domain.SourceCurated}}
	search := []domain.Release{{ID: "b", Source: domain.SourceSearch}, {ID: "a", Name: "search", Source: domain.SourceSearch}}
	browse := []domain.Release{{ID: "c", Source: domain.SourceBrowse}, {ID: "b", Source: domain.SourceBrowse}}

	set := Merge(curated, search, browse)

	got := set.Releases()
	require.Len(t, got, 3)
	assert.Equal(t, "curated", got[0].Name)
	assert.Equal(t, domain.SourceSearch, got[1].Source)
	assert.Equal(t, "c", got[2].ID)
}

func TestMerge_Empty(t *testing.T) {
	assert.Equal(t, 0, Merge().Len())
	assert.Equal(t, 0, Merge(nil, []domain.Release{}).Len())
}

func TestFilter_RecencyWindow(t *testing.T) {
	set := Merge([]domain.Release{
		release("in", "2025-03-10", 50, "x"),
		release("edge", "2025-02-13", 50, "x"),
		release("old", "2025-02-12", 50, "x"),
		release("year", "2025", 50, "x"),
		release("month", "2025-03", 50, "x"),
		release("bad", "someday", 50, "x"),
		release("empty", "", 50, "x"),
	})

	got := newTestFilter(nil, nil).Apply(context.Background(), set, domain.FilterCriteria{WindowDays: 30})

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"in", "month"}, ids)
}

func TestFilter_RecencyCutoffIsExact(t *testing.T) {
	set := Merge([]domain.Release{
		release("day-before", "2025-02-12", 50, "x"),
		release("boundary", "2025-02-13", 50, "x"),
		release("day-after", "2025-02-14", 50, "x"),
	})
	crit := domain.FilterCriteria{WindowDays: 30}

	// At noon the boundary day began twelve hours before now-30d.
	noon := newTestFilter(nil, nil).Apply(context.Background(), set, crit)
	ids := make([]string, 0, len(noon))
	for _, r := range noon {
		ids = append(ids, r.ID)
		parsed, err := domain.ParseReleaseDate(r.ReleaseDate)
		require.NoError(t, err)
		assert.False(t, parsed.Time.Before(fixedNow.AddDate(0, 0, -30)), "%s is older than the window", r.ID)
	}
	assert.Equal(t, []string{"day-after"}, ids)

	midnight := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	f := NewFilter(nil, nil, logger.Discard(), WithClock(func() time.Time { return midnight }))
	ids = ids[:0]
	for _, r := range f.Apply(context.Background(), set, crit) {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"boundary", "day-after"}, ids)
}

func TestFilter_MinPopularityAndEnrichment(t *testing.T) {
	pop := &fakePopularity{
		scores: map[string]int{"lazy": 70, "lazy-low": 5},
		tracks: map[string]int{"lazy": 9},
		fail:   map[string]bool{"broken": true},
	}
	set := Merge([]domain.Release{
		release("known", "2025-03-10", 40, "x"),
		release("low", "2025-03-10", 10, "x"),
		release("lazy", "2025-03-10", -1, "x"),
		release("lazy-low", "2025-03-10", -1, "x"),
		release("broken", "2025-03-10", -1, "x"),
	})

	got := newTestFilter(pop, nil).Apply(context.Background(), set, domain.FilterCriteria{WindowDays: 30, MinPopularity: 20})

	require.Len(t, got, 2)
	assert.Equal(t, "lazy", got[0].ID)
	assert.Equal(t, 70, got[0].PopularityOrZero())
	assert.Equal(t, 9, got[0].TotalTracks)
	assert.Equal(t, "known", got[1].ID)
	assert.Equal(t, 3, pop.calls)

	// The merged set keeps its un-enriched copies.
	for _, r := range set.Releases() {
		if r.ID == "lazy" {
			assert.Nil(t, r.Popularity)
		}
	}
}

func TestFilter_GenreKeywords(t *testing.T) {
	genres := newFakeGenres()
	set := Merge([]domain.Release{
		release("rock", "2025-03-10", 50, "band"),
		release("pop", "2025-03-10", 60, "popstar"),
		release("untagged", "2025-03-10", 40, "newcomer"),
		release("error", "2025-03-10", 30, "flaky"),
	})

	crit := domain.NewFilterCriteria(30, "alternative rock indie", 0, false)
	got := newTestFilter(nil, genres).Apply(context.Background(), set, crit)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"rock", "untagged", "error"}, ids)
}

func TestFilter_GenreKeywordsAreLiteralSubstrings(t *testing.T) {
	genres := &fakeGenres{tags: map[string][]string{
		"emo":      {"emo"},
		"indie":    {"indie"},
		"trap":     {"trap"},
		"southern": {"Southern Hip Hop"},
	}}
	set := Merge([]domain.Release{
		release("emo", "2025-03-10", 50, "emo"),
		release("indie", "2025-03-10", 50, "indie"),
		release("trap", "2025-03-10", 50, "trap"),
		release("southern", "2025-03-10", 50, "southern"),
	})

	ids := func(got []domain.Release) []string {
		out := make([]string, 0, len(got))
		for _, r := range got {
			out = append(out, r.ID)
		}
		return out
	}

	rock := newTestFilter(nil, genres).Apply(context.Background(), set, domain.NewFilterCriteria(30, "rock", 0, false))
	assert.Empty(t, ids(rock))

	hip := newTestFilter(nil, genres).Apply(context.Background(), set, domain.NewFilterCriteria(30, "hip", 0, false))
	assert.Equal(t, []string{"southern"}, ids(hip))
}

func TestFilter_GenreStageDropsReleasesWithoutArtists(t *testing.T) {
	genres := newFakeGenres()
	orphan := domain.Release{ID: "orphan", ReleaseDate: "2025-03-10"}
	orphan.SetPopularity(50)
	scoped := orphan
	scoped.ID = "scoped-orphan"
	scoped.GenreScoped = true
	set := Merge([]domain.Release{orphan, scoped})

	got := newTestFilter(nil, genres).Apply(context.Background(), set, domain.NewFilterCriteria(30, "rock", 0, true))
	require.Len(t, got, 1)
	assert.Equal(t, "scoped-orphan", got[0].ID)

	// Without keywords there is no genre stage to fail.
	got = newTestFilter(nil, genres).Apply(context.Background(), set, domain.FilterCriteria{WindowDays: 30})
	assert.Len(t, got, 2)
}

func TestFilter_TrustGenreScoped(t *testing.T) {
	genres := newFakeGenres()
	scoped := release("scoped", "2025-03-10", 50, "popstar")
	scoped.GenreScoped = true
	set := Merge([]domain.Release{scoped})

	trusted := newTestFilter(nil, genres).Apply(context.Background(), set, domain.NewFilterCriteria(30, "rock", 0, true))
	assert.Len(t, trusted, 1)

	verified := newTestFilter(nil, genres).Apply(context.Background(), set, domain.NewFilterCriteria(30, "rock", 0, false))
	assert.Empty(t, verified)
}

func TestFilter_RankedByPopularityStable(t *testing.T) {
	set := Merge([]domain.Release{
		release("a", "2025-03-10", 30, "x"),
		release("b", "2025-03-11", 90, "x"),
		release("c", "2025-03-12", 30, "x"),
		release("d", "2025-03-13", 60, "x"),
		release("e", "2025-03-14", 90, "x"),
	})

	got := newTestFilter(nil, nil).Apply(context.Background(), set, domain.FilterCriteria{WindowDays: 30})

	ids := make([]string, 0, len(got))
	for i, r := range got {
		ids = append(ids, r.ID)
		if i > 0 {
			assert.LessOrEqual(t, r.PopularityOrZero(), got[i-1].PopularityOrZero())
		}
	}
	assert.Equal(t, []string{"b", "e", "d", "a", "c"}, ids)
}

func newFakeGenres() *fakeGenres {
	return &fakeGenres{
		tags: map[string][]string{
			"band":    {"Modern Rock", "indie"},
			"popstar": {"pop", "dance pop"},
		},
		fail: map[string]bool{"flaky": true},
	}
}
