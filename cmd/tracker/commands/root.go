package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/qepting91/cs2-market-tracker/internal/config"
	"github.com/spf13/cobra"
)

// LogLevel is lowered to Debug by --verbose.
var LogLevel = new(slog.LevelVar)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker exports and analyzes your CS2 Steam Community Market history.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			LogLevel.Set(slog.LevelDebug)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "json5 config file; <name>.local.json5 is merged over it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}
