package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"statehouse-backend/lib/serviceutil"
	"statehouse-backend/services/reconcile"
	"statehouse-backend/services/research"
)

var researchState *string
var researchCategory *string
var researchNoCache *bool

func init() {
	researchState = researchCmd.Flags().String("state", "", "Only research gaps in this state abbreviation.")
	researchCategory = researchCmd.Flags().String("category", "", "Only research gaps in this category.")
	researchNoCache = researchCmd.Flags().Bool("no-cache", false, "Re-download pages even when cached copies exist.")
	rootCmd.AddCommand(researchCmd)
}

var researchCmd = &cobra.Command{
	Use:   "research [--state <XX>] [--category <name>] [--no-cache]",
	Short: "Looks up start and end reasons for actionable gaps and updates the gap artifact.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		gaps, err := reconcile.ReadGaps(cfg.GapsPath)
		if err != nil {
			serviceutil.Fatal("failed to read gap artifact, run 'audit' first", err)
		}

		var indexes []int
		var selected []reconcile.Gap
		for i, gap := range gaps {
			if *researchState != "" && gap.State != *researchState {
				continue
			}
			if *researchCategory != "" && gap.Category != reconcile.Category(*researchCategory) {
				continue
			}
			indexes = append(indexes, i)
			selected = append(selected, gap)
		}

		researcher := research.NewResearcher(research.ResearcherOptions{
			CacheDir: cfg.ResearchCacheDir,
			NoCache:  *researchNoCache,
		})
		enriched := researcher.Enrich(cmd.Context(), selected)
		for i, idx := range indexes {
			gaps[idx] = enriched[i]
		}

		err = reconcile.WriteGaps(cfg.GapsPath, gaps)
		if err != nil {
			serviceutil.Fatal("failed to write gap artifact", err)
		}
		slog.Info("research complete", "researched", len(selected), "path", cfg.GapsPath)
	},
}
