package commands

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"statehouse-backend/lib/serviceutil"
	"statehouse-backend/lib/telemetry"
	"statehouse-backend/services/members"
)

var downloadState *string
var downloadNoCache *bool

func init() {
	downloadState = downloadCmd.Flags().String("state", "", "Only scrape this state abbreviation.")
	downloadNoCache = downloadCmd.Flags().Bool("no-cache", false, "Re-download pages even when cached copies exist.")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download [--state <XX>] [--no-cache]",
	Short: "Scrapes legislature rosters and writes the member artifact.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		telemetry.InstrumentPerfStats(cmd.Context())

		var states []string
		if *downloadState != "" {
			if _, ok := members.StatePages[*downloadState]; !ok {
				serviceutil.Fatal("unknown state abbreviation", fmt.Errorf("no pages registered for %q", *downloadState))
			}
			states = []string{*downloadState}
		} else {
			for state := range members.StatePages {
				states = append(states, state)
			}
			sort.Strings(states)
		}

		scraper := members.NewScraper(members.ScraperOptions{
			CacheDir: cfg.MemberCacheDir,
			NoCache:  *downloadNoCache,
		})

		t1 := time.Now()
		records, err := scraper.ScrapeAll(cmd.Context(), states)
		if err != nil {
			serviceutil.Fatal("failed to scrape rosters", err)
		}
		t2 := time.Now()

		merge := *downloadState != ""
		err = members.WriteArtifact(cfg.MembersPath, records, merge)
		if err != nil {
			serviceutil.Fatal("failed to write member artifact", err)
		}

		slog.Info("download complete",
			"states", len(states),
			"members", len(records),
			"path", cfg.MembersPath,
			"seconds", t2.Sub(t1).Seconds())
	},
}
