// Package di provides dependency injection configuration for release radar.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Providers are lazy: fetch runs never open the HTTP server and serve never
// builds the catalog clients.
func NewContainer(o config.Overrides) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ConfigProvider(o))
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideHTTPClient)

	// Sources
	do.Provide(injector, providers.ProvideTokenProvider)
	do.Provide(injector, providers.ProvideCatalogFactory)
	do.Provide(injector, providers.ProvideAppleMusicClient)
	do.Provide(injector, providers.ProvideFeedReader)
	do.Provide(injector, providers.ProvideRoster)

	// Services
	do.Provide(injector, providers.ProvideAggregator)
	do.Provide(injector, providers.ProvideSnapshotService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}
