package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/releaseradar/internal/api"
	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/service"
)

// APIServerHandle wraps the API handler with shutdown capability.
type APIServerHandle struct {
	*api.Server
}

// Shutdown implements do.Shutdownable.
func (h *APIServerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAPIServer provides the snapshot API handler.
func ProvideAPIServer(i do.Injector) (*APIServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	snapshots := do.MustInvoke[*service.SnapshotService](i)

	var pinger api.Pinger
	if storeHandle.Enabled() {
		pinger = storeHandle.Store
	}

	handler := api.NewServer(snapshots, pinger, api.Options{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		Burst:             max(cfg.Server.RequestsPerMinute/4, 1),
	}, log.WithComponent("api"))

	return &APIServerHandle{Server: handler}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handler := do.MustInvoke[*APIServerHandle](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
