package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/listenupapp/releaseradar/internal/store"
)

// GenreFetcher looks up artist genre tags at the catalog.
type GenreFetcher interface {
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)
}

// GenreCache persists genre tags between runs.
type GenreCache interface {
	GetCachedGenres(ctx context.Context, artistID string) (*store.CachedGenres, error)
	SetCachedGenres(ctx context.Context, artistID string, genres []string) error
}

// GenreService resolves artist genres through a run-local memo, then the
// persistent cache, then the catalog.
type GenreService struct {
	fetcher GenreFetcher
	cache   GenreCache
	logger  *slog.Logger

	mu   sync.Mutex
	memo map[string][]string
}

// NewGenreService creates a genre service. cache may be nil.
func NewGenreService(fetcher GenreFetcher, cache GenreCache, logger *slog.Logger) *GenreService {
	return &GenreService{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
		memo:    make(map[string][]string),
	}
}

// ArtistGenres implements the filter's genre lookup.
func (s *GenreService) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	s.mu.Lock()
	if tags, ok := s.memo[artistID]; ok {
		s.mu.Unlock()
		return tags, nil
	}
	s.mu.Unlock()

	if s.cache != nil {
		cached, err := s.cache.GetCachedGenres(ctx, artistID)
		if err != nil {
			s.logger.Warn("genre cache lookup failed",
				"error", err,
				"artist_id", artistID,
			)
			// Continue to fetch fresh
		}
		if cached != nil {
			s.logger.Debug("cache hit for artist genres", "artist_id", artistID)
			s.remember(artistID, cached.Genres)
			return cached.Genres, nil
		}
	}

	tags, err := s.fetcher.ArtistGenres(ctx, artistID)
	if err != nil {
		return nil, err
	}
	s.remember(artistID, tags)

	if s.cache != nil {
		if err := s.cache.SetCachedGenres(ctx, artistID, tags); err != nil {
			s.logger.Warn("failed to cache artist genres",
				"error", err,
				"artist_id", artistID,
			)
		}
	}

	return tags, nil
}

func (s *GenreService) remember(artistID string, tags []string) {
	s.mu.Lock()
	s.memo[artistID] = tags
	s.mu.Unlock()
}
