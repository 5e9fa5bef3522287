package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// GenreCacheDuration is how long an artist's genre tags are trusted.
const GenreCacheDuration = 7 * 24 * time.Hour

// CachedGenres wraps an artist's genre tags with cache info.
type CachedGenres struct {
	ArtistID  string    `json:"artist_id"`
	Genres    []string  `json:"genres"`
	FetchedAt time.Time `json:"fetched_at"`
}

// GetCachedGenres retrieves cached genre tags.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedGenres(ctx context.Context, artistID string) (*CachedGenres, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached CachedGenres
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(genreKey(artistID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached genres: %w", err)
	}

	if s.now().Sub(cached.FetchedAt) > GenreCacheDuration {
		return nil, nil // Treat as cache miss
	}

	return &cached, nil
}

// SetCachedGenres stores an artist's genre tags. An empty tag list is cached
// too, since "no tags" is a meaningful answer for the genre filter.
func (s *Store) SetCachedGenres(ctx context.Context, artistID string, genres []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if genres == nil {
		genres = []string{}
	}

	data, err := json.Marshal(CachedGenres{
		ArtistID:  artistID,
		Genres:    genres,
		FetchedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("marshal cached genres: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		// Badger expires the entry as well so stale keys are reclaimed.
		return txn.SetEntry(badger.NewEntry(genreKey(artistID), data).WithTTL(GenreCacheDuration))
	})
}

// DeleteCachedGenres removes an artist's cached tags.
func (s *Store) DeleteCachedGenres(ctx context.Context, artistID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(genreKey(artistID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Idempotent
		}
		return err
	})
}
