package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

var (
	tradeHeader       = []string{"name", "bought_price", "sold_price", "profit_loss", "transaction_type", "stickers", "sticker_costs"}
	transactionHeader = []string{"name", "price", "transaction_type", "stickers"}
)

// WriteTradeCSV writes the paired records, one row each.
func WriteTradeCSV(w io.Writer, records []domain.TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeHeader); err != nil {
		return err
	}
	for _, rec := range records {
		bought, sold := rec.Columns()
		row := []string{
			rec.Name,
			bought,
			sold,
			rec.ProfitLoss(),
			rec.TransactionType(),
			rec.StickerList(),
			rec.StickerCostDetails(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactionCSV writes the raw extracted transactions without pairing.
func WriteTransactionCSV(w io.Writer, txs []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := cw.Write([]string{tx.Name, tx.Price, string(tx.Direction), strings.Join(tx.Stickers, ", ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePagesJSON writes the raw page responses as an indented JSON array.
func WritePagesJSON(w io.Writer, pages []domain.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if pages == nil {
		pages = []domain.Page{}
	}
	return enc.Encode(pages)
}

func WriteInventoryJSON(w io.Writer, items []domain.InventoryItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if items == nil {
		items = []domain.InventoryItem{}
	}
	return enc.Encode(items)
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
