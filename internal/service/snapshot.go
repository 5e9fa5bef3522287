package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
	"github.com/listenupapp/releaseradar/internal/output"
	"github.com/listenupapp/releaseradar/internal/store"
)

// SnapshotHistory is the store side of SnapshotService.
type SnapshotHistory interface {
	LatestSnapshot(ctx context.Context) (*domain.Snapshot, error)
	GetSnapshot(ctx context.Context, runID string) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]store.SnapshotSummary, error)
}

// SnapshotService serves published snapshots from the store, falling back to
// the output file when no store is configured or it is empty.
type SnapshotService struct {
	history    SnapshotHistory
	outputPath string
	logger     *slog.Logger
}

// NewSnapshotService creates a snapshot service. history may be nil.
func NewSnapshotService(history SnapshotHistory, outputPath string, logger *slog.Logger) *SnapshotService {
	return &SnapshotService{history: history, outputPath: outputPath, logger: logger}
}

// Latest returns the most recent snapshot.
func (s *SnapshotService) Latest(ctx context.Context) (*domain.Snapshot, error) {
	if s.history != nil {
		snap, err := s.history.LatestSnapshot(ctx)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		s.logger.Debug("snapshot store empty, reading output file", "path", s.outputPath)
	}
	if s.outputPath == "" {
		return nil, errors.NotFound("no snapshot has been published")
	}
	return output.ReadFile(s.outputPath)
}

// Get returns the snapshot for a past run.
func (s *SnapshotService) Get(ctx context.Context, runID string) (*domain.Snapshot, error) {
	if s.history == nil {
		return nil, errors.Unavailable("snapshot history is not enabled")
	}
	return s.history.GetSnapshot(ctx, runID)
}

// Category returns one category of the latest snapshot.
func (s *SnapshotService) Category(ctx context.Context, key string) (*domain.CategoryReleases, *domain.Snapshot, error) {
	snap, err := s.Latest(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, ok := snap.Category(key)
	if !ok {
		return nil, nil, errors.NotFoundf("category %q not found", key)
	}
	return &c, snap, nil
}

// News returns up to limit news items from the latest snapshot.
func (s *SnapshotService) News(ctx context.Context, limit int) ([]domain.NewsRecord, error) {
	snap, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	news := snap.News
	if limit > 0 && len(news) > limit {
		news = news[:limit]
	}
	return news, nil
}

// History lists stored runs, newest first.
func (s *SnapshotService) History(ctx context.Context, limit int) ([]store.SnapshotSummary, error) {
	if s.history == nil {
		return nil, errors.Unavailable("snapshot history is not enabled")
	}
	return s.history.ListSnapshots(ctx, limit)
}

// HistoryEnabled reports whether a snapshot store is configured.
func (s *SnapshotService) HistoryEnabled() bool {
	return s.history != nil
}
