package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"statehouse-backend/lib/serviceutil"
	"statehouse-backend/services/members"
	"statehouse-backend/services/reconcile"
)

var auditState *string
var auditSummary *bool

func init() {
	auditState = auditCmd.Flags().String("state", "", "Only audit this state abbreviation.")
	auditSummary = auditCmd.Flags().Bool("summary", false, "Print category counts only, no per-gap detail.")
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit [--state <XX>] [--summary]",
	Short: "Diffs the member artifact against the seat store and writes the gap artifact.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		records, err := members.ReadArtifact(cfg.MembersPath)
		if err != nil {
			serviceutil.Fatal("failed to read member artifact, run 'download' first", err)
		}

		store, database := openStore(cfg)
		defer database.Close()

		gaps, err := reconcile.Audit(cmd.Context(), store, records, reconcile.AuditParams{
			State:        *auditState,
			SpecialYears: cfg.SpecialYears,
			Overrides:    loadOverrides(cfg),
		})
		if err != nil {
			serviceutil.Fatal("audit failed", err)
		}

		reconcile.WriteSummary(os.Stdout, gaps)
		if !*auditSummary {
			reconcile.WriteDetail(os.Stdout, gaps)
		}

		err = reconcile.WriteGaps(cfg.GapsPath, gaps)
		if err != nil {
			serviceutil.Fatal("failed to write gap artifact", err)
		}
		slog.Info("audit complete", "gaps", len(gaps), "path", cfg.GapsPath)
	},
}
