package commands

import (
	"github.com/qepting91/cs2-market-tracker/internal/notify"
	"github.com/spf13/cobra"
)

var emailFile string

func init() {
	emailCmd.Flags().StringVarP(&emailFile, "file", "f", "market_history.csv", "file to attach")
	rootCmd.AddCommand(emailCmd)
}

var emailCmd = &cobra.Command{
	Use:   "email [--file <path>]",
	Short: "Emails an exported file to EMAIL_TO.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return notify.SendFile(cfg.Email, emailFile)
	},
}
