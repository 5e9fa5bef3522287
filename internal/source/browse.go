package source

import (
	"context"
	"log/slog"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
)

// Browse lists the catalog's newest releases. It ignores the category.
type Browse struct {
	catalog catalog.Catalog
	limit   int
	logger  *slog.Logger
}

// NewBrowse creates a browse adapter.
func NewBrowse(c catalog.Catalog, limit int, logger *slog.Logger) *Browse {
	return &Browse{catalog: c, limit: limit, logger: logger}
}

// Name implements Adapter.
func (b *Browse) Name() string { return string(domain.SourceBrowse) }

// Fetch implements Adapter.
func (b *Browse) Fetch(ctx context.Context, category domain.Category) []domain.Release {
	releases, err := b.catalog.NewReleases(ctx, b.limit)
	if err != nil {
		b.logger.Warn("browse new releases failed", "category", category.Key, "error", err)
		return nil
	}
	return tag(releases, domain.SourceBrowse, false)
}
