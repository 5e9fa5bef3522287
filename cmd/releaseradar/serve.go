package main

import (
	"context"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/di/providers"
	"github.com/listenupapp/releaseradar/internal/logger"
)

func newServeCommand(o *config.Overrides) *cobra.Command {
	var (
		interval time.Duration
		keep     int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest snapshot over HTTP",
		Long: `Starts the read-only snapshot API. With --fetch-interval the pipeline also
runs on start and then on every tick.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), o, func(ctx context.Context, injector do.Injector, log *logger.Logger) error {
				if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
					return err
				}

				if interval > 0 {
					go fetchLoop(ctx, injector, log, interval, keep)
				}

				<-ctx.Done()
				log.Info("Shutting down server gracefully...")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&o.Port, "port", "", "HTTP port (default 8080)")
	cmd.Flags().DurationVar(&interval, "fetch-interval", 0, "Run the pipeline periodically, e.g. 6h (0 disables)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Prune snapshot history to the newest N runs after each fetch")

	return cmd
}

// fetchLoop runs the pipeline immediately and then every interval until ctx ends.
func fetchLoop(ctx context.Context, injector do.Injector, log *logger.Logger, interval time.Duration, keep int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := runFetch(ctx, injector, log, keep); err != nil {
			log.Error("Scheduled fetch failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
