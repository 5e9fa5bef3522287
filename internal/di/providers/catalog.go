package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/applemusic"
	"github.com/listenupapp/releaseradar/internal/catalog"
	"github.com/listenupapp/releaseradar/internal/catalog/spotify"
	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/feed"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/ratelimit"
	"github.com/listenupapp/releaseradar/internal/service"
)

// HTTPClientHandle is the shared outbound client. Every request goes through a
// per-host limiter spaced by the configured request interval.
type HTTPClientHandle struct {
	*http.Client
	limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *HTTPClientHandle) Shutdown() error {
	h.limiter.Stop()
	return nil
}

// ProvideHTTPClient provides the rate-limited outbound HTTP client.
func ProvideHTTPClient(i do.Injector) (*HTTPClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	limiter := ratelimit.Every(cfg.Pipeline.RequestInterval)
	client := &http.Client{
		Timeout:   httpTimeout,
		Transport: ratelimit.NewTransport(http.DefaultTransport, limiter),
	}
	return &HTTPClientHandle{Client: client, limiter: limiter}, nil
}

// ProvideTokenProvider provides the primary catalog's client-credentials token source.
func ProvideTokenProvider(i do.Injector) (catalog.TokenProvider, error) {
	cfg := do.MustInvoke[*config.Config](i)
	httpClient := do.MustInvoke[*HTTPClientHandle](i)

	return spotify.NewTokenProvider(
		cfg.Spotify.ClientID,
		cfg.Spotify.ClientSecret,
		cfg.Spotify.TokenURL,
		httpClient.Client,
	), nil
}

// ProvideCatalogFactory provides the per-run primary catalog constructor.
func ProvideCatalogFactory(i do.Injector) (service.CatalogFactory, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	httpClient := do.MustInvoke[*HTTPClientHandle](i)

	opts := spotify.Options{
		BaseURL:    cfg.Spotify.BaseURL,
		HTTPClient: httpClient.Client,
	}
	return func(ctx context.Context, session *catalog.Session) catalog.Catalog {
		return spotify.New(ctx, session, opts, log.WithComponent("spotify"))
	}, nil
}

// ProvideAppleMusicClient provides the secondary catalog search client.
func ProvideAppleMusicClient(i do.Injector) (*applemusic.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	httpClient := do.MustInvoke[*HTTPClientHandle](i)

	client := applemusic.New(applemusic.Options{
		SearchURL:  cfg.AppleMusic.SearchURL,
		Storefront: cfg.AppleMusic.Storefront,
		Timeout:    cfg.AppleMusic.SearchTimeout,
		Limit:      cfg.AppleMusic.SearchLimit,
	}, httpClient.Client, log.WithComponent("applemusic"))

	log.Debug("Apple Music client initialized", "storefront", client.Storefront())
	return client, nil
}

// ProvideFeedReader provides the RSS/Atom reader.
func ProvideFeedReader(i do.Injector) (*feed.Reader, error) {
	log := do.MustInvoke[*logger.Logger](i)
	httpClient := do.MustInvoke[*HTTPClientHandle](i)

	return feed.NewReader(httpClient.Client, log.WithComponent("feed")), nil
}
