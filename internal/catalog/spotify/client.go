// Package spotify implements catalog.Catalog on the Spotify Web API.
package spotify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
)

// Client is a catalog.Catalog backed by the Spotify Web API.
type Client struct {
	api    *spotifyapi.Client
	market string
	logger *slog.Logger
}

var _ catalog.Catalog = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API root, mostly for tests.
	BaseURL string
	// HTTPClient supplies the transport the bearer-token client wraps.
	HTTPClient *http.Client
}

// New creates a client authorized by session.
func New(ctx context.Context, session *catalog.Session, opts Options, logger *slog.Logger) *Client {
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	httpClient := oauth2.NewClient(ctx, session.TokenSource())

	var clientOpts []spotifyapi.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotifyapi.WithBaseURL(strings.TrimSuffix(opts.BaseURL, "/")+"/"))
	}

	return &Client{
		api:    spotifyapi.New(httpClient, clientOpts...),
		market: session.Market,
		logger: logger,
	}
}

// NewReleases lists the newest releases in the session market.
func (c *Client) NewReleases(ctx context.Context, limit int) ([]domain.Release, error) {
	page, err := c.api.NewReleases(ctx, spotifyapi.Limit(limit), spotifyapi.Country(c.market))
	if err != nil {
		return nil, wrap(err, "browse new releases")
	}
	return toReleases(page.Albums), nil
}

// SearchAlbums runs an album search.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) ([]domain.Release, error) {
	res, err := c.api.Search(ctx, query, spotifyapi.SearchTypeAlbum, spotifyapi.Limit(limit), spotifyapi.Market(c.market))
	if err != nil {
		return nil, wrap(err, "search albums")
	}
	if res.Albums == nil {
		return nil, nil
	}
	return toReleases(res.Albums.Albums), nil
}

// SearchArtist returns the first artist hit. No similarity check is made.
func (c *Client) SearchArtist(ctx context.Context, name string) (domain.Artist, error) {
	res, err := c.api.Search(ctx, name, spotifyapi.SearchTypeArtist, spotifyapi.Limit(1))
	if err != nil {
		return domain.Artist{}, wrap(err, "search artist")
	}
	if res.Artists == nil || len(res.Artists.Artists) == 0 {
		return domain.Artist{}, errors.NotFoundf("no artist matching %q", name)
	}
	a := res.Artists.Artists[0]
	return domain.Artist{ID: a.ID.String(), Name: a.Name}, nil
}

// ArtistReleases lists the artist's albums and singles.
func (c *Client) ArtistReleases(ctx context.Context, artistID string) ([]domain.Release, error) {
	page, err := c.api.GetArtistAlbums(ctx, spotifyapi.ID(artistID),
		[]spotifyapi.AlbumType{spotifyapi.AlbumTypeAlbum, spotifyapi.AlbumTypeSingle},
		spotifyapi.Limit(50),
		spotifyapi.Market(c.market),
	)
	if err != nil {
		return nil, wrap(err, "list artist albums")
	}
	return toReleases(page.Albums), nil
}

// Album fetches a full album, including popularity and track count.
func (c *Client) Album(ctx context.Context, id string) (domain.Release, error) {
	full, err := c.api.GetAlbum(ctx, spotifyapi.ID(id), spotifyapi.Market(c.market))
	if err != nil {
		return domain.Release{}, wrap(err, "get album")
	}
	r := toRelease(full.SimpleAlbum)
	r.TotalTracks = int(full.Tracks.Total)
	r.SetPopularity(int(full.Popularity))
	return r, nil
}

// ArtistGenres returns the artist's genre tags.
func (c *Client) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	artist, err := c.api.GetArtist(ctx, spotifyapi.ID(artistID))
	if err != nil {
		return nil, wrap(err, "get artist")
	}
	return artist.Genres, nil
}

func toReleases(albums []spotifyapi.SimpleAlbum) []domain.Release {
	out := make([]domain.Release, 0, len(albums))
	for i := range albums {
		out = append(out, toRelease(albums[i]))
	}
	return out
}

// toRelease maps a listed album. Listings have no track count; Album fills it.
func toRelease(a spotifyapi.SimpleAlbum) domain.Release {
	r := domain.Release{
		ID:          a.ID.String(),
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		SpotifyURL:  a.ExternalURLs["spotify"],
		Type:        domain.ParseReleaseType(a.AlbumType),
		Artists:     make([]domain.Artist, 0, len(a.Artists)),
	}
	for _, artist := range a.Artists {
		r.Artists = append(r.Artists, domain.Artist{ID: artist.ID.String(), Name: artist.Name})
	}
	if len(a.Images) > 0 {
		r.ImageURL = a.Images[0].URL
	}
	return r
}

// wrap classifies API failures. zmb3 returns spotifyapi.Error for non-2xx
// responses.
func wrap(err error, op string) error {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return errors.NotFound(op + ": not found").WithCause(err)
		case apiErr.Status == http.StatusTooManyRequests:
			return errors.Wrap(err, errors.CodeRateLimited, op)
		}
	}
	return errors.Transport(err, op)
}
