package source

import (
	"context"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
)

// Enricher fetches a release's full catalog record. Listings carry neither
// popularity nor a track count; the full record has both.
type Enricher struct {
	catalog catalog.Catalog
}

// NewEnricher creates an enricher.
func NewEnricher(c catalog.Catalog) *Enricher {
	return &Enricher{catalog: c}
}

// FullRelease returns the catalog's full record for releaseID.
func (e *Enricher) FullRelease(ctx context.Context, releaseID string) (domain.Release, error) {
	return e.catalog.Album(ctx, releaseID)
}
