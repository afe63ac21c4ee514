package commands

import (
	"io"
	"log/slog"

	"github.com/qepting91/cs2-market-tracker/internal/collector"
	"github.com/qepting91/cs2-market-tracker/internal/config"
	"github.com/qepting91/cs2-market-tracker/internal/extract"
	"github.com/qepting91/cs2-market-tracker/internal/ingest"
	"github.com/qepting91/cs2-market-tracker/internal/notify"
	"github.com/qepting91/cs2-market-tracker/internal/pairing"
	"github.com/qepting91/cs2-market-tracker/internal/report"
	"github.com/qepting91/cs2-market-tracker/internal/storage"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	cookieFile   string
	cookie       string
	delay        float64
	maxPages     int
	output       string
	rawJSON      bool
	records      string
	transactions bool
	email        bool
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.cookieFile, "cookie-file", "", "file holding the Steam cookies (Netscape export or name=value; ...)")
	f.StringVar(&historyFlags.cookie, "cookie", "", "Steam cookie string, e.g. \"sessionid=...; steamLoginSecure=...\"")
	f.Float64Var(&historyFlags.delay, "delay", 0.8, "seconds between requests")
	f.IntVar(&historyFlags.maxPages, "max-pages", 0, "stop after this many pages (0 = all)")
	f.StringVarP(&historyFlags.output, "output", "o", "market_history.csv", "CSV output path")
	f.BoolVar(&historyFlags.rawJSON, "json", false, "print the raw page responses as JSON instead of writing CSV")
	f.StringVar(&historyFlags.records, "records", "data/trades.json", "NDJSON trade log read by the dashboard (empty disables)")
	f.BoolVar(&historyFlags.transactions, "transactions", false, "export the extracted transactions without pairing")
	f.BoolVar(&historyFlags.email, "email", false, "email the CSV after export")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--cookie-file <path>] [-o <out.csv>]",
	Short: "Downloads the market history and computes profit/loss per item.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyHistoryFlags(cmd, &cfg)

		var cookies map[string]string
		if cfg.CollectorMode != collector.ModeMock {
			header, err := cfg.ResolveCookie()
			if err != nil {
				return err
			}
			cookies = ingest.ParseCookieString(header)
		}

		fetcher, err := collector.NewCollector(cfg.CollectorMode, cookies)
		if err != nil {
			return err
		}
		slog.Info("collector initialized", "mode", cfg.CollectorMode, "delay", cfg.Delay, "max_pages", cfg.MaxPages)

		pages, err := collector.Paginator{
			Fetcher:  fetcher,
			Delay:    cfg.DelayDuration(),
			MaxPages: cfg.MaxPages,
		}.Collect(cmd.Context())
		if err != nil {
			return err
		}

		if historyFlags.rawJSON {
			return storage.WritePagesJSON(cmd.OutOrStdout(), pages)
		}

		txs := extract.Transactions(pages)
		slog.Info("extracted transactions", "pages", len(pages), "transactions", len(txs))

		if historyFlags.transactions {
			err = storage.WriteFile(cfg.Output, func(w io.Writer) error {
				return storage.WriteTransactionCSV(w, txs)
			})
			if err != nil {
				return err
			}
		} else {
			res := pairing.Pair(txs)
			err = storage.WriteFile(cfg.Output, func(w io.Writer) error {
				return storage.WriteTradeCSV(w, res.Records)
			})
			if err != nil {
				return err
			}
			if cfg.Records != "" {
				log := &storage.RecordLog{FilePath: cfg.Records}
				if err := log.Write(res.Records); err != nil {
					return err
				}
			}
			report.Summary(cmd.ErrOrStderr(), res.Records, res.Totals)
		}
		slog.Info("saved market history", "file", cfg.Output)

		if historyFlags.email {
			return notify.SendFile(cfg.Email, cfg.Output)
		}
		return nil
	},
}

func applyHistoryFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("cookie-file") {
		cfg.CookieFile = historyFlags.cookieFile
	}
	if f.Changed("cookie") {
		cfg.Cookie = historyFlags.cookie
		if !f.Changed("cookie-file") {
			cfg.CookieFile = ""
		}
	}
	if f.Changed("delay") {
		cfg.Delay = historyFlags.delay
	}
	if f.Changed("max-pages") {
		cfg.MaxPages = historyFlags.maxPages
	}
	if f.Changed("output") {
		cfg.Output = historyFlags.output
	}
	if f.Changed("records") {
		cfg.Records = historyFlags.records
	}
}
