package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/store"
)

// StoreHandle wraps the store with shutdown capability. Store is nil when no
// cache path is configured.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	if h.Store == nil {
		return nil
	}
	return h.Close()
}

// Enabled reports whether a store was opened.
func (h *StoreHandle) Enabled() bool {
	return h.Store != nil
}

// ProvideStore opens the genre cache and snapshot history.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Paths.CachePath == "" {
		log.Info("No cache path configured, genre cache and snapshot history disabled")
		return &StoreHandle{}, nil
	}

	db, err := store.New(cfg.Paths.CachePath, log.WithComponent("store"))
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
