package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		RunID:       "run_abc",
		LastUpdated: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
		Categories: []domain.CategoryReleases{
			{Key: "rock", Label: "Alternative Rock", Releases: []domain.ReleaseRecord{{Name: "Romance", Artists: "Fontaines D.C.", AlbumType: "album", Popularity: 70}}},
			{Key: "hiphop", Label: "Hip Hop"},
		},
		News: []domain.NewsRecord{{Title: "Tour announced", Link: "https://news.example/1", Published: "2025-03-15 09:00"}},
	}
}

func TestEncode_FlatFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testSnapshot()))

	var flat map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &flat))

	assert.Contains(t, flat, "rock")
	assert.Contains(t, flat, "hiphop")
	assert.Equal(t, []any{}, flat["hiphop"])
	assert.Equal(t, "2025-03-15T12:00:00Z", flat["last_updated"])
	assert.Equal(t, false, flat["demo"])

	rock := flat["rock"].([]any)[0].(map[string]any)
	assert.Equal(t, "Romance", rock["name"])
	assert.Equal(t, "Fontaines D.C.", rock["artists"])

	// Category order is preserved in the file.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"rock"`)), bytes.Index(buf.Bytes(), []byte(`"hiphop"`)))
}

func TestFileSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "music_data.json")
	sink := NewFileSink(path)

	require.NoError(t, sink.Write(context.Background(), testSnapshot()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run_abc", got.RunID)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "rock", got.Categories[0].Key)
	assert.Equal(t, "Romance", got.Categories[0].Releases[0].Name)
	assert.Empty(t, got.Categories[1].Releases)
	assert.Len(t, got.News, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, errors.ErrNotFound)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"last_updated": "yesterday"}`), 0o644))
	_, err = ReadFile(bad)
	assert.ErrorIs(t, err, errors.ErrParse)
}

type recordingSaver struct {
	saved []*domain.Snapshot
	err   error
}

func (r *recordingSaver) SaveSnapshot(_ context.Context, snap *domain.Snapshot) error {
	r.saved = append(r.saved, snap)
	return r.err
}

func TestMulti(t *testing.T) {
	ok := &recordingSaver{}
	failing := &recordingSaver{err: errors.Internal("disk full")}

	err := Multi{NewStoreSink(failing), NewStoreSink(ok)}.Write(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInternal)
	assert.Len(t, ok.saved, 1)
}
