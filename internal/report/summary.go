// Package report renders the transaction summary for a pairing result.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// Summary writes the grouped listings and totals of a pairing result.
func Summary(w io.Writer, records []domain.TradeRecord, totals domain.Totals) {
	groups := map[domain.RecordKind][]domain.TradeRecord{}
	var withStickers []domain.TradeRecord
	for _, rec := range records {
		groups[rec.Kind] = append(groups[rec.Kind], rec)
		if len(rec.Stickers) > 0 {
			withStickers = append(withStickers, rec)
		}
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nTRANSACTION SUMMARY\n%s\n", rule, rule)

	matched := groups[domain.KindMatched]
	fmt.Fprintf(w, "\nBOUGHT & SOLD ITEMS: %d\n", len(matched))
	fmt.Fprintf(w, "Total Profit/Loss (adjusted for sticker costs): %s\n", domain.Dollars(totals.MatchedProfit))
	if len(matched) > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"Item", "Bought", "Sold", "Profit/Loss", "Stickers", "Sticker costs"})
		for _, rec := range matched {
			t.AppendRow(table.Row{rec.Name, rec.BoughtPrice, rec.SoldPrice, rec.ProfitLoss(), rec.StickerList(), rec.StickerCostDetails()})
		}
		t.Render()
	}

	singleSided(w, "BOUGHT ONLY (Not Sold)", "Total Investment", groups[domain.KindBoughtOnly], totals.BoughtOnlyValue)
	singleSided(w, "SOLD ONLY (Not Previously Bought)", "Total Revenue", groups[domain.KindSoldOnly], totals.SoldOnlyValue)

	if stickers := groups[domain.KindSticker]; len(stickers) > 0 {
		fmt.Fprintf(w, "\nSTICKER TRANSACTIONS: %d\n", len(stickers))
		fmt.Fprintf(w, "Total Sticker Investment: %s\n", domain.Dollars(totals.StickerInvestment))
		t := newTable(w)
		t.AppendHeader(table.Row{"Sticker", "Type", "Price"})
		for _, rec := range stickers {
			t.AppendRow(table.Row{rec.Name, rec.TransactionType(), rec.Price})
		}
		t.Render()
	}

	if len(withStickers) > 0 {
		fmt.Fprintf(w, "\nITEMS WITH STICKERS: %d\n", len(withStickers))
		for _, rec := range withStickers {
			fmt.Fprintf(w, "  - %s (%s): %s\n", rec.Name, rec.TransactionType(), rec.StickerList())
		}
	}

	fmt.Fprintf(w, "\nOVERALL SUMMARY:\n")
	fmt.Fprintf(w, "Net Profit/Loss: %s\n", domain.Dollars(totals.Net()))
	fmt.Fprintf(w, "(Completed trades: %s + Sold only: %s - Bought only: %s - Sticker investment: %s)\n",
		domain.Dollars(totals.MatchedProfit),
		domain.Dollars(totals.SoldOnlyValue),
		domain.Dollars(totals.BoughtOnlyValue),
		domain.Dollars(totals.StickerInvestment),
	)
	fmt.Fprintf(w, "%s\n\n", rule)
}

func singleSided(w io.Writer, title, totalLabel string, records []domain.TradeRecord, total decimal.Decimal) {
	fmt.Fprintf(w, "\n%s: %d\n", title, len(records))
	fmt.Fprintf(w, "%s: %s\n", totalLabel, domain.Dollars(total))
	if len(records) == 0 {
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Item", "Price", "Stickers"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Name, rec.Price, rec.StickerList()})
	}
	t.Render()
}
