package applemusic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/listenupapp/releaseradar/internal/domain"
)

const (
	defaultSearchURL  = "https://itunes.apple.com/search"
	defaultStorefront = "us"
	defaultTimeout    = 10 * time.Second
	defaultLimit      = 5
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a Client. Zero values take the defaults.
type Options struct {
	SearchURL  string
	Storefront string
	Timeout    time.Duration
	Limit      int
}

// Client searches the iTunes catalog. Throttling is the job of the HTTP
// client's transport.
type Client struct {
	http       *http.Client
	searchURL  string
	storefront string
	timeout    time.Duration
	limit      int
	logger     *slog.Logger
}

// New creates a client. A nil httpClient uses http.DefaultClient.
func New(opts Options, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if opts.SearchURL == "" {
		opts.SearchURL = defaultSearchURL
	}
	if opts.Storefront == "" {
		opts.Storefront = defaultStorefront
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	return &Client{
		http:       httpClient,
		searchURL:  opts.SearchURL,
		storefront: opts.Storefront,
		timeout:    opts.Timeout,
		limit:      opts.Limit,
		logger:     logger,
	}
}

// Storefront returns the two-letter store the client searches.
func (c *Client) Storefront() string {
	return c.storefront
}

// SearchAlbums runs a free-text album search. Each call carries its own
// timeout independent of ctx's deadline.
func (c *Client) SearchAlbums(ctx context.Context, term string) ([]domain.CatalogAlbum, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("entity", "album")
	params.Set("country", c.storefront)
	params.Set("limit", strconv.Itoa(c.limit))

	searchURL := c.searchURL + "?" + params.Encode()

	c.logger.Debug("searching iTunes",
		"term", term,
		"url", searchURL,
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.doRequest(ctx, searchURL)
	if err != nil {
		return nil, wrapError("search", term, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", term, fmt.Errorf("parse response: %w", err))
	}

	c.logger.Debug("iTunes search results",
		"term", term,
		"count", resp.ResultCount,
	)

	albums := make([]domain.CatalogAlbum, 0, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		if r.WrapperType != "" && r.WrapperType != "collection" {
			continue
		}
		albums = append(albums, domain.CatalogAlbum{
			Title:          r.CollectionName,
			Artist:         r.ArtistName,
			ReleaseDate:    r.ReleaseDate,
			CollectionType: r.CollectionType,
			TrackCount:     r.TrackCount,
			URL:            r.CollectionURL,
		})
	}

	return albums, nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests, http.StatusForbidden:
		// iTunes answers 403 when a client exceeds its quota.
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
