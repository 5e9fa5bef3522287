// Package output writes fetch-run snapshots: a flat JSON file for static
// sites, and optionally the snapshot store.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
)

// Reserved top-level keys in the file format. Every other key is a category.
const (
	keyNews        = "news"
	keyLastUpdated = "last_updated"
	keyRunID       = "run_id"
	keyDemo        = "demo"
)

var fileJSON = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
	SortMapKeys:   true,
}.Froze()

// Sink receives the snapshot at the end of a run.
type Sink interface {
	Write(ctx context.Context, snap *domain.Snapshot) error
}

// SnapshotSaver is the store side of a StoreSink.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error
}

// FileSink writes the snapshot as a flat JSON object:
//
//	{"hiphop": [...], "rock": [...], "news": [...], "last_updated": "..."}
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the output file path.
func (f *FileSink) Path() string { return f.path }

// Write replaces the file atomically.
func (f *FileSink) Write(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace output file: %w", err)
	}
	return nil
}

// Encode writes snap in the flat file format. Categories keep their order.
func Encode(w io.Writer, snap *domain.Snapshot) error {
	stream := fileJSON.BorrowStream(w)
	defer fileJSON.ReturnStream(stream)

	stream.WriteObjectStart()
	for _, c := range snap.Categories {
		records := c.Releases
		if records == nil {
			records = []domain.ReleaseRecord{}
		}
		stream.WriteObjectField(c.Key)
		stream.WriteVal(records)
		stream.WriteMore()
	}

	news := snap.News
	if news == nil {
		news = []domain.NewsRecord{}
	}
	stream.WriteObjectField(keyNews)
	stream.WriteVal(news)
	stream.WriteMore()

	stream.WriteObjectField(keyLastUpdated)
	stream.WriteString(snap.LastUpdated.Format(time.RFC3339))
	stream.WriteMore()

	stream.WriteObjectField(keyRunID)
	stream.WriteString(snap.RunID)
	stream.WriteMore()

	stream.WriteObjectField(keyDemo)
	stream.WriteBool(snap.Demo)
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")

	if stream.Error != nil {
		return fmt.Errorf("encode snapshot: %w", stream.Error)
	}
	return stream.Flush()
}

// Decode reads the flat file format. Category labels are not stored, so each
// category's label is set to its key.
func Decode(data []byte) (*domain.Snapshot, error) {
	iter := fileJSON.BorrowIterator(data)
	defer fileJSON.ReturnIterator(iter)

	snap := &domain.Snapshot{}
	var parseErr error

	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		switch field {
		case keyNews:
			it.ReadVal(&snap.News)
		case keyLastUpdated:
			raw := it.ReadString()
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				parseErr = errors.Parsef("last_updated %q is not RFC 3339", raw).WithCause(err)
				return false
			}
			snap.LastUpdated = t
		case keyRunID:
			snap.RunID = it.ReadString()
		case keyDemo:
			snap.Demo = it.ReadBool()
		default:
			var records []domain.ReleaseRecord
			it.ReadVal(&records)
			snap.Categories = append(snap.Categories, domain.CategoryReleases{Key: field, Label: field, Releases: records})
		}
		return it.Error == nil
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Parsef("decode snapshot: %v", iter.Error).WithCause(iter.Error)
	}
	return snap, nil
}

// ReadFile loads a snapshot written by FileSink.
func ReadFile(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.NotFoundf("snapshot file %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return Decode(data)
}

// StoreSink saves snapshots into the snapshot history.
type StoreSink struct {
	saver SnapshotSaver
}

// NewStoreSink creates a sink backed by saver.
func NewStoreSink(saver SnapshotSaver) *StoreSink {
	return &StoreSink{saver: saver}
}

// Write implements Sink.
func (s *StoreSink) Write(ctx context.Context, snap *domain.Snapshot) error {
	return s.saver.SaveSnapshot(ctx, snap)
}

// Multi writes to every sink in order and joins their errors.
type Multi []Sink

// Write implements Sink.
func (m Multi) Write(ctx context.Context, snap *domain.Snapshot) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
