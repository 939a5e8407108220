package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ptarn/cadence/internal/config"
	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/persist"
	"github.com/ptarn/cadence/internal/store"
)

var version = "dev"

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:           "cadence",
	Short:         "Track periodic communication obligations with companies",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		companyCmd,
		methodCmd,
		logCmd,
		statusCmd,
		statsCmd,
		calendarCmd,
		reportCmd,
		exportCmd,
		importCmd,
		watchCmd,
		dashboardCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// app bundles the wired application: config, snapshot database, and the
// record store restored from it and mirrored back on every mutation.
type app struct {
	cfg   *config.Config
	db    *persist.SQLiteStore
	store *store.Store
}

// openApp loads config, opens the snapshot database, and restores the
// record store (seeding on first run). Persistence failures are reported
// but never stop the CLI from operating in memory.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := persist.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	rs := persist.Restore(ctx, db, model.Today(), func(err error) {
		printWarning("snapshot unreadable, starting from seed data: %v", err)
	})
	persist.Mirror(rs, db, func(err error) {
		printWarning("saving snapshot: %v", err)
	})

	return &app{cfg: cfg, db: db, store: rs}, nil
}

// Close releases the snapshot database.
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		printWarning("closing snapshot db: %v", err)
	}
}
