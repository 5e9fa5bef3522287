package main

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/di/providers"
	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/logger"
	"github.com/listenupapp/releaseradar/internal/service"
)

func newFetchCommand(o *config.Overrides) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run the pipeline once and write the snapshot",
		Long: `Gathers new releases for every roster category, filters and ranks them,
resolves secondary catalog links, reads news feeds and writes the snapshot to
the output file (and to the snapshot history when a cache path is set).

Without catalog credentials a demo snapshot is written instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), o, func(ctx context.Context, injector do.Injector, log *logger.Logger) error {
				snap, err := runFetch(ctx, injector, log, keep)
				if err != nil {
					return err
				}
				printSummary(cmd, snap)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&o.WindowDays, "window-days", "", "Recency window in days (default 30)")
	cmd.Flags().StringVar(&o.MinPopularity, "min-popularity", "", "Minimum popularity 0-100 (default 0)")
	cmd.Flags().StringVar(&o.ResolvePolicy, "policy", "", "Secondary catalog resolve policy: first-strong or exhaustive")
	cmd.Flags().IntVar(&keep, "keep", 0, "Prune snapshot history to the newest N runs (0 keeps all)")

	return cmd
}

// runFetch runs the aggregator once and prunes history when keep > 0.
func runFetch(ctx context.Context, injector do.Injector, log *logger.Logger, keep int) (*domain.Snapshot, error) {
	aggregator, err := do.Invoke[*service.Aggregator](injector)
	if err != nil {
		return nil, err
	}

	snap, err := aggregator.Run(ctx)
	if err != nil {
		return nil, err
	}

	if keep > 0 {
		storeHandle := do.MustInvoke[*providers.StoreHandle](injector)
		if storeHandle.Enabled() {
			removed, err := storeHandle.PruneSnapshots(ctx, keep)
			if err != nil {
				log.Warn("Snapshot prune failed", "error", err)
			} else if removed > 0 {
				log.Info("Pruned snapshot history", "removed", removed, "kept", keep)
			}
		}
	}
	return snap, nil
}

func printSummary(cmd *cobra.Command, snap *domain.Snapshot) {
	out := cmd.OutOrStdout()
	if snap.Demo {
		fmt.Fprintln(out, "No catalog credentials: wrote demo data.")
	}
	for _, c := range snap.Categories {
		fmt.Fprintf(out, "%-20s %3d releases\n", c.Label, len(c.Releases))
	}
	fmt.Fprintf(out, "%-20s %3d items\n", "News", len(snap.News))
	fmt.Fprintf(out, "Run %s finished.\n", snap.RunID)
}
