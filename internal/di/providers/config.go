// Package providers contains dependency injection providers for release radar.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/logger"
)

// ConfigProvider returns a provider that loads configuration with the given
// command-line overrides.
func ConfigProvider(o config.Overrides) func(do.Injector) (*config.Config, error) {
	return func(do.Injector) (*config.Config, error) {
		return config.Load(o)
	}
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Debug("Configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"roster_path", cfg.Paths.RosterPath,
		"output_path", cfg.Paths.OutputPath,
		"cache_path", cfg.Paths.CachePath,
		"credentials", cfg.HasCredentials(),
	)

	return log, nil
}
