package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/di"
	"github.com/listenupapp/releaseradar/internal/logger"
)

func newRootCommand() *cobra.Command {
	overrides := &config.Overrides{}

	rootCmd := &cobra.Command{
		Use:           "releaseradar",
		Short:         "Aggregate new music releases and news into a snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&overrides.EnvFile, "env-file", "", "Path to a .env file (default .env)")
	flags.StringVar(&overrides.Env, "env", "", "Environment: development, staging or production")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&overrides.LogFormat, "log-format", "", "Log format: pretty or json")
	flags.StringVar(&overrides.RosterPath, "roster", "", "Roster file with categories, curated artists and feeds")
	flags.StringVar(&overrides.OutputPath, "output", "", "Snapshot output file (default music_data.json)")
	flags.StringVar(&overrides.CachePath, "cache", "", "Directory for the genre cache and snapshot history")

	rootCmd.AddCommand(newFetchCommand(overrides))
	rootCmd.AddCommand(newServeCommand(overrides))
	rootCmd.AddCommand(newRosterCommand(overrides))

	return rootCmd
}

// withContainer builds the container, runs fn and shuts the container down.
// The context is cancelled on SIGINT or SIGTERM.
func withContainer(ctx context.Context, o *config.Overrides, fn func(ctx context.Context, injector do.Injector, log *logger.Logger) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := di.NewContainer(*o)

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return err
	}

	runErr := fn(ctx, injector, log)

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	return runErr
}
