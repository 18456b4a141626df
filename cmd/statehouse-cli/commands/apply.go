package commands

import (
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"statehouse-backend/lib/serviceutil"
	"statehouse-backend/services/reconcile"
)

var applyState *string
var applyDryRun *bool

func init() {
	applyState = applyCmd.Flags().String("state", "", "Only apply gaps in this state abbreviation.")
	applyDryRun = applyCmd.Flags().Bool("dry-run", false, "Log every write the run would make without touching the store.")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply [--state <XX>] [--dry-run]",
	Short: "Executes the corrections in the gap artifact against the seat store.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		gaps, err := reconcile.ReadGaps(cfg.GapsPath)
		if err != nil {
			serviceutil.Fatal("failed to read gap artifact, run 'audit' first", err)
		}
		if *applyState != "" {
			var filtered []reconcile.Gap
			for _, gap := range gaps {
				if gap.State == *applyState {
					filtered = append(filtered, gap)
				}
			}
			gaps = filtered
		}

		store, database := openStore(cfg)
		defer database.Close()

		applier := reconcile.Applier{Store: store, DryRun: *applyDryRun}
		stats, err := applier.Apply(cmd.Context(), gaps)
		if err != nil {
			serviceutil.Fatal("apply aborted", err)
		}

		var results []string
		for result := range stats {
			results = append(results, result)
		}
		sort.Strings(results)
		for _, result := range results {
			slog.Info("apply result", "outcome", result, "count", stats[result])
		}
		slog.Info("apply complete", "gaps", len(gaps), "dry_run", *applyDryRun)
	},
}
