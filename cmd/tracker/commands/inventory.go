package commands

import (
	"io"
	"log/slog"

	"github.com/qepting91/cs2-market-tracker/internal/collector"
	"github.com/qepting91/cs2-market-tracker/internal/report"
	"github.com/qepting91/cs2-market-tracker/internal/storage"
	"github.com/spf13/cobra"
)

var inventoryOutput string

func init() {
	inventoryCmd.Flags().StringVarP(&inventoryOutput, "output", "o", "inventory.json", "JSON output path")
	rootCmd.AddCommand(inventoryCmd)
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory <profile url | steamid64>",
	Short: "Lists the public CS2 inventory of a Steam profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		source, err := collector.NewInventorySource(cfg.CollectorMode)
		if err != nil {
			return err
		}

		items, err := source.FetchInventory(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		report.Inventory(cmd.OutOrStdout(), items)

		err = storage.WriteFile(inventoryOutput, func(w io.Writer) error {
			return storage.WriteInventoryJSON(w, items)
		})
		if err != nil {
			return err
		}
		slog.Info("saved inventory", "file", inventoryOutput, "items", len(items))
		return nil
	},
}
