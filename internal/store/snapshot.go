package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
)

// SnapshotSummary describes one stored run without its releases.
type SnapshotSummary struct {
	RunID       string    `json:"run_id"`
	LastUpdated time.Time `json:"last_updated"`
	Demo        bool      `json:"demo"`
	Releases    int       `json:"releases"`
	News        int       `json:"news"`
}

// SaveSnapshot stores snap in the run history and marks it latest.
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.RunID == "" {
		return errors.Validation("snapshot run id is required")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := snapshotKey(snap.LastUpdated, snap.RunID)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(snapshotRunIdxKey(snap.RunID), key); err != nil {
			return err
		}
		return txn.Set([]byte(snapshotLatestKey), key)
	})
}

// LatestSnapshot returns the most recently saved snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap *domain.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := getValue(txn, []byte(snapshotLatestKey))
		if err != nil {
			return err
		}
		snap, err = getSnapshotInTxn(txn, key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.NotFound("no snapshot has been stored")
	}
	if err != nil {
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return snap, nil
}

// GetSnapshot returns the snapshot for runID.
func (s *Store) GetSnapshot(ctx context.Context, runID string) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap *domain.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := getValue(txn, snapshotRunIdxKey(runID))
		if err != nil {
			return err
		}
		snap, err = getSnapshotInTxn(txn, key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.NotFoundf("snapshot %q not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns up to limit summaries, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]SnapshotSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries := []SnapshotSummary{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && len(summaries) >= limit {
				break
			}
			var snap domain.Snapshot
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			}); err != nil {
				return err
			}
			summaries = append(summaries, SnapshotSummary{
				RunID:       snap.RunID,
				LastUpdated: snap.LastUpdated,
				Demo:        snap.Demo,
				Releases:    snap.ReleaseCount(),
				News:        len(snap.News),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return summaries, nil
}

// PruneSnapshots keeps the newest keep snapshots and deletes the rest.
// Returns the number deleted.
func (s *Store) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	type stale struct {
		key   []byte
		runID string
	}
	var victims []stale

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		seen := 0
		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			seen++
			if seen <= keep {
				continue
			}
			var snap domain.Snapshot
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			}); err != nil {
				return err
			}
			victims = append(victims, stale{key: it.Item().KeyCopy(nil), runID: snap.RunID})
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan snapshots: %w", err)
	}

	for _, v := range victims {
		err := s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete(v.key); err != nil {
				return err
			}
			return txn.Delete(snapshotRunIdxKey(v.runID))
		})
		if err != nil {
			return 0, fmt.Errorf("delete snapshot: %w", err)
		}
	}
	return len(victims), nil
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func getSnapshotInTxn(txn *badger.Txn, key []byte) (*domain.Snapshot, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &snap)
	}); err != nil {
		return nil, err
	}
	return &snap, nil
}
