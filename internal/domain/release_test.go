package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/releaseradar/internal/errors"
)

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		raw       string
		want      time.Time
		precision DatePrecision
		wantErr   bool
	}{
		{raw: "2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), precision: PrecisionYear},
		{raw: "2024-06", want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), precision: PrecisionMonth},
		{raw: "2024-06-14", want: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), precision: PrecisionDay},
		{raw: "2024-06-14T07:00:00Z", want: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), precision: PrecisionDay},
		{raw: "", wantErr: true},
		{raw: "20x4", wantErr: true},
		{raw: "2024-13", wantErr: true},
		{raw: "June 2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseReleaseDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v", got.Time)
			assert.Equal(t, tt.precision, got.Precision)
		})
	}
}

func TestDateOnlyAndWithin(t *testing.T) {
	assert.Equal(t, "2024-06-14", DateOnly("2024-06-14T07:00:00Z"))
	assert.Equal(t, "", DateOnly("2024-06"))

	a := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, Within(a, a.AddDate(0, 0, 7), 7*24*time.Hour))
	assert.True(t, Within(a.AddDate(0, 0, 7), a, 7*24*time.Hour))
	assert.False(t, Within(a, a.AddDate(0, 0, 8), 7*24*time.Hour))
}

func TestCandidateSet_FirstSeenWins(t *testing.T) {
	set := NewCandidateSet()

	assert.True(t, set.Add(Release{ID: "a", Name: "first", Source: SourceCurated}))
	assert.True(t, set.Add(Release{ID: "b", Name: "other"}))
	assert.False(t, set.Add(Release{ID: "a", Name: "second", Source: SourceBrowse}))

	got := set.Releases()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, SourceCurated, got[0].Source)
	assert.Equal(t, "b", got[1].ID)
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("z"))
	assert.Equal(t, 2, set.Len())
}

func TestRelease_Record(t *testing.T) {
	r := Release{
		ID:          "1",
		Name:        "GNX",
		Artists:     []Artist{{ID: "k", Name: "Kendrick Lamar"}, {ID: "s", Name: "SZA"}},
		ReleaseDate: "2024-11-22",
		TotalTracks: 12,
	}

	rec := r.Record()
	assert.Equal(t, "Kendrick Lamar, SZA", rec.Artists)
	assert.Equal(t, "album", rec.AlbumType)
	assert.Equal(t, 0, rec.Popularity)

	r.SetPopularity(88)
	r.Type = ReleaseTypeSingle
	rec = r.Record()
	assert.Equal(t, 88, rec.Popularity)
	assert.Equal(t, "single", rec.AlbumType)
	assert.Equal(t, "k", r.PrimaryArtist().ID)
}

func TestParseReleaseType(t *testing.T) {
	assert.Equal(t, ReleaseTypeSingle, ParseReleaseType("Single"))
	assert.Equal(t, ReleaseTypeEP, ParseReleaseType(" EP "))
	assert.Equal(t, ReleaseTypeCompilation, ParseReleaseType("compilation"))
	assert.Equal(t, ReleaseTypeAlbum, ParseReleaseType(""))
}

func TestCategory_Keywords(t *testing.T) {
	c := Category{Key: "rock", Keywords: "Alternative, rock indie"}
	assert.Equal(t, []string{"alternative", "rock", "indie"}, c.KeywordList())
	assert.Equal(t, "alternative", c.SearchGenre())
	assert.Equal(t, "", Category{}.SearchGenre())

	crit := NewFilterCriteria(30, "hip hop,rap", 10, true)
	assert.Equal(t, []string{"hip", "hop", "rap"}, crit.Keywords)
	assert.True(t, crit.TrustGenreScoped)
}

func TestNewsItem_Record(t *testing.T) {
	n := NewsItem{Title: "t", Published: time.Date(2025, 3, 4, 9, 5, 0, 0, time.UTC)}
	assert.Equal(t, "2025-03-04 09:05", n.Record().Published)
}

func TestFeedSource_ScoreRegexp(t *testing.T) {
	re, err := FeedSource{}.ScoreRegexp()
	require.NoError(t, err)
	assert.Nil(t, re)

	re, err = FeedSource{ScorePattern: `(\d+) points`}.ScoreRegexp()
	require.NoError(t, err)
	assert.Equal(t, []string{"42 points", "42"}, re.FindStringSubmatch("story 42 points"))

	_, err = FeedSource{ScorePattern: `(`}.ScoreRegexp()
	assert.Error(t, err)
}
