package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/releaseradar/internal/errors"
	"github.com/listenupapp/releaseradar/internal/logger"
)

func serveFixture(t *testing.T, name string) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestReader_RSS(t *testing.T) {
	server := serveFixture(t, "rss.xml")
	r := NewReader(server.Client(), logger.Discard())

	entries, err := r.Read(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "New album announced", first.Title)
	assert.Equal(t, "https://news.example.com/a", first.Link)
	require.NotNil(t, first.Published)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), first.Published.UTC())
	assert.Equal(t, "The band is back & touring....", Summarize(first.Summary))

	second := entries[1]
	assert.Nil(t, second.Published)
	fetched := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fetched, second.PublishedOr(fetched))
	assert.Equal(t, EmptySummary, Summarize(second.Summary))
}

func TestReader_AtomUpdatedFallback(t *testing.T) {
	server := serveFixture(t, "atom.xml")
	r := NewReader(server.Client(), logger.Discard())

	entries, err := r.Read(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "https://atom.example.com/1", e.Link)
	want := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, want, e.PublishedOr(time.Now()).UTC())
}

func TestReader_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(notFound.Close)

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	t.Cleanup(garbage.Close)

	r := NewReader(nil, logger.Discard())

	_, err := r.Read(context.Background(), notFound.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTransport)

	_, err = r.Read(context.Background(), garbage.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParse)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "hello   world", "hello world"},
		{"tags", "<p>One</p><p>Two</p>", "One Two"},
		{"entities", "Rock &amp; Roll", "Rock & Roll"},
		{"script dropped", "<p>keep</p><script>alert(1)</script>", "keep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestSummarize_Truncates(t *testing.T) {
	long := strings.Repeat("é", 250)
	got := Summarize(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, SummaryLimit+3, len([]rune(got)))

	exact := strings.Repeat("a", SummaryLimit)
	assert.Equal(t, exact+"...", Summarize(exact))

	assert.Equal(t, "short...", Summarize("<p>short</p>"))
}
