package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/app"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/config"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "skillmap",
	Short:        "Sphere-grid skill recommendations and XP ledger",
	Long:         "skillmap browses an FFX-style skill graph, spends learner XP on new skills and ranks what to learn next.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLMAP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a skillmap config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(learnerCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// global flags (highest priority).
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// openApp builds the full application from config and flags. Callers
// must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(os.Stderr, cfg.Log)

	return app.New(cmd.Context(), cfg, app.Options{Logger: logger})
}
