// Package dashboard serves charts over the saved trade record log.
package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

// Handler renders the dashboard page, re-reading dataFile on every request.
func Handler(dataFile string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		records, err := loadData(dataFile)
		if err != nil {
			slog.Error("failed to load trade records", "file", dataFile, "err", err)
			http.Error(w, "failed to load trade records", http.StatusInternalServerError)
			return
		}

		page := components.NewPage()
		page.AddCharts(profitChart(records), kindChart(records))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(w); err != nil {
			slog.Error("failed to render dashboard", "err", err)
		}
	})
}

// Profit per completed trade
func profitChart(records []domain.TradeRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Profit per Trade", Subtitle: "adjusted for sticker costs"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "CS2 Market History", Theme: types.ThemeWesteros}),
	)

	var barX []string
	var barY []opts.BarData
	for _, rec := range records {
		if rec.Kind != domain.KindMatched {
			continue
		}
		barX = append(barX, rec.Name)
		barY = append(barY, opts.BarData{Value: rec.AdjustedProfit.InexactFloat64()})
	}
	bar.SetXAxis(barX).AddSeries("Profit", barY)
	return bar
}

func kindChart(records []domain.TradeRecord) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Record Types"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		label := rec.TransactionType()
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	var pieItems []opts.PieData
	for _, label := range order {
		pieItems = append(pieItems, opts.PieData{Name: label, Value: counts[label]})
	}
	pie.AddSeries("Records", pieItems)
	return pie
}

// StartServer serves the dashboard until ctx is cancelled or the listener fails.
func StartServer(ctx context.Context, dataFile string, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/", Handler(dataFile))
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadData reads the NDJSON record log. A missing file yields no records;
// undecodable lines are skipped.
func loadData(path string) ([]domain.TradeRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []domain.TradeRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec domain.TradeRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, scanner.Err()
}
