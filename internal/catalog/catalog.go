// Package catalog defines the primary release catalog the pipeline browses,
// searches and enriches from, and the per-run session used to reach it.
package catalog

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/listenupapp/releaseradar/internal/domain"
)

// Catalog is the primary catalog's read API.
type Catalog interface {
	// NewReleases lists the globally newest releases.
	NewReleases(ctx context.Context, limit int) ([]domain.Release, error)
	// SearchAlbums runs a free-text album query.
	SearchAlbums(ctx context.Context, query string, limit int) ([]domain.Release, error)
	// SearchArtist returns the first artist hit for name.
	SearchArtist(ctx context.Context, name string) (domain.Artist, error)
	// ArtistReleases lists an artist's albums and singles.
	ArtistReleases(ctx context.Context, artistID string) ([]domain.Release, error)
	// Album fetches the full record for a release, including popularity.
	Album(ctx context.Context, id string) (domain.Release, error)
	// ArtistGenres returns an artist's genre tags.
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)
}

// TokenProvider acquires a bearer token. A nil token with a nil error means
// no credentials are configured.
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Session is the catalog access acquired once at the start of a run. It is
// read-only afterwards and passed explicitly to whatever needs the catalog.
type Session struct {
	Token      *oauth2.Token
	Market     string
	AcquiredAt time.Time
}

// OpenSession acquires a token from p. It returns a nil session when p has no
// credentials.
func OpenSession(ctx context.Context, p TokenProvider, market string) (*Session, error) {
	tok, err := p.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, nil
	}
	return &Session{Token: tok, Market: market, AcquiredAt: time.Now()}, nil
}

// TokenSource exposes the session token to oauth2-aware HTTP clients.
func (s *Session) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(s.Token)
}
