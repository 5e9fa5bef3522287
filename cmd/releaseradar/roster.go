package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/listenupapp/releaseradar/internal/config"
	"github.com/listenupapp/releaseradar/internal/roster"
)

func newRosterCommand(o *config.Overrides) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster file utilities",
	}

	rosterCmd.AddCommand(newRosterValidateCommand(o))

	return rosterCmd
}

func newRosterValidateCommand(o *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a roster file and list its categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(o.RosterPath)
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no roster path given (pass a path or --roster)")
			}

			r, err := roster.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s is valid\n", path)
			for _, c := range r.Categories {
				fmt.Fprintf(out, "  %-12s %-24s %d artists\n", c.Key, c.Label, len(c.Artists))
			}
			fmt.Fprintf(out, "  %d feeds\n", len(r.Feeds))
			return nil
		},
	}
}
