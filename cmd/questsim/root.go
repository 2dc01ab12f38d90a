package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/quest-resolver/internal/config"
	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/entropy"
	"github.com/talgya/quest-resolver/internal/logging"
	"github.com/talgya/quest-resolver/internal/persistence"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	dbPath   string
	logLevel string
}

// app holds the settings and tier catalog prepared before every subcommand.
var app struct {
	cfg config.Config
	reg *difficulty.Registry
}

var rootCmd = &cobra.Command{
	Use:   "questsim",
	Short: "Quest outcome resolution against generated difficulty tiers",
	Long: "questsim computes crit/success/failure/disaster chances for a party on a quest,\n" +
		"rolls outcomes and rewards, and checks the sampler with Monte Carlo runs.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.dbPath, "db", "", "Run journal path (default $QUESTSIM_DB_PATH)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "debug, info, warn or error (default $QUESTSIM_LOG_LEVEL)")

	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.dbPath != "" {
		cfg.DBPath = rootFlags.dbPath
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.LogFormat, cmd.ErrOrStderr())

	gen := difficulty.DefaultGenConfig()
	gen.MaxLevel = cfg.MaxLevel
	reg, err := difficulty.Generate(gen)
	if err != nil {
		return fmt.Errorf("generate tiers: %w", err)
	}

	app.cfg = cfg
	app.reg = reg
	return nil
}

// openDB opens the run journal, creating its directory if needed.
func openDB() (*persistence.DB, error) {
	if dir := filepath.Dir(app.cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return persistence.Open(app.cfg.DBPath)
}

// pickSeed returns the flag seed when set, then the configured seed, and
// draws a fresh one when both are zero.
func pickSeed(flagSeed int64) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case app.cfg.Seed != 0:
		return app.cfg.Seed
	}
	return entropy.NewSeed()
}
