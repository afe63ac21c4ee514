package commands

import (
	"log/slog"

	"github.com/qepting91/cs2-market-tracker/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardData string

func init() {
	dashboardCmd.Flags().StringVar(&dashboardData, "data", "", "NDJSON trade log written by history (defaults to the configured records path)")
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [--data <trades.json>]",
	Short: "Serves profit/loss charts over the saved trade records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data := cfg.Records
		if dashboardData != "" {
			data = dashboardData
		}

		slog.Info("starting dashboard", "port", cfg.Port, "data", data)
		return dashboard.StartServer(cmd.Context(), data, cfg.Port)
	},
}
