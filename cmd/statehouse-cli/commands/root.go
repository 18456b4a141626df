package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"statehouse-backend/lib/configutil"
	"statehouse-backend/lib/serviceutil"
	"statehouse-backend/lib/sqliteutil"
	"statehouse-backend/services/reconcile"
	"statehouse-backend/services/seatstore"
	seatdb "statehouse-backend/services/seatstore/db"
)

var rootCmd = &cobra.Command{
	Use:   "statehouse-cli",
	Short: "statehouse-cli audits and corrects state legislature seat data.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	Database sqliteutil.Config `json:"database"`
	// MembersPath is the scraped roster artifact shared by download and audit.
	MembersPath string `json:"members_path"`
	// GapsPath is the classified gap artifact shared by audit, research and apply.
	GapsPath         string `json:"gaps_path"`
	MemberCacheDir   string `json:"member_cache_dir"`
	ResearchCacheDir string `json:"research_cache_dir"`
	// OverridesPath points at the curated mismatch override list.
	OverridesPath string `json:"overrides_path"`
	// SpecialYears are the election years checked for special elections.
	SpecialYears []int `json:"special_years"`
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("statehouse.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.Database.File == "" && cfg.Database.Url == "" {
		cfg.Database.File = "statehouse.db"
	}
	if cfg.MembersPath == "" {
		cfg.MembersPath = ".dev/members.json"
	}
	if cfg.GapsPath == "" {
		cfg.GapsPath = ".dev/gaps.json"
	}
	if cfg.MemberCacheDir == "" {
		cfg.MemberCacheDir = ".dev/cache/members"
	}
	if cfg.ResearchCacheDir == "" {
		cfg.ResearchCacheDir = ".dev/cache/research"
	}
	if cfg.OverridesPath == "" {
		cfg.OverridesPath = "reconcile.json5"
	}
	if len(cfg.SpecialYears) == 0 {
		year := time.Now().Year()
		cfg.SpecialYears = []int{year - 1, year}
	}
	return cfg
}

func openStore(cfg Config) (seatstore.Store, *sql.DB) {
	database, err := sqliteutil.OpenWithSchema(cfg.Database, seatdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	return seatstore.NewStore(database), database
}

func loadOverrides(cfg Config) reconcile.Overrides {
	overrides, err := configutil.ReadConfig[reconcile.Overrides](cfg.OverridesPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read overrides", err)
	}
	return overrides
}
