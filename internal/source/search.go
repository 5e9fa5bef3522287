package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
)

// Search queries the catalog by the category's first keyword and the current
// year. Results are marked genre-scoped.
type Search struct {
	catalog catalog.Catalog
	limit   int
	now     func() time.Time
	logger  *slog.Logger
}

// NewSearch creates a search adapter.
func NewSearch(c catalog.Catalog, limit int, now func() time.Time, logger *slog.Logger) *Search {
	if now == nil {
		now = time.Now
	}
	return &Search{catalog: c, limit: limit, now: now, logger: logger}
}

// Name implements Adapter.
func (s *Search) Name() string { return string(domain.SourceSearch) }

// Query returns the catalog query for category, or "" when it has no keywords.
func (s *Search) Query(category domain.Category) string {
	genre := category.SearchGenre()
	if genre == "" {
		return ""
	}
	return fmt.Sprintf("genre:%q year:%d", genre, s.now().Year())
}

// Fetch implements Adapter.
func (s *Search) Fetch(ctx context.Context, category domain.Category) []domain.Release {
	q := s.Query(category)
	if q == "" {
		return nil
	}
	releases, err := s.catalog.SearchAlbums(ctx, q, s.limit)
	if err != nil {
		s.logger.Warn("genre search failed", "category", category.Key, "query", q, "error", err)
		return nil
	}
	return tag(releases, domain.SourceSearch, true)
}
