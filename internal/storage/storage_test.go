package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.TradeRecord {
	return []domain.TradeRecord{
		{
			Kind:           domain.KindMatched,
			Name:           "AK-47 | Redline",
			BoughtPrice:    "$10.00",
			SoldPrice:      "$15.00",
			BoughtValue:    decimal.RequireFromString("10"),
			SoldValue:      decimal.RequireFromString("15"),
			BaseProfit:     decimal.RequireFromString("5"),
			StickerCost:    decimal.RequireFromString("2"),
			AdjustedProfit: decimal.RequireFromString("3"),
			Stickers:       []string{"Crown (Foil)"},
			StickerCosts:   []domain.StickerCost{{Name: "Crown (Foil)", Price: decimal.RequireFromString("2")}},
		},
		{
			Kind:      domain.KindSoldOnly,
			Name:      "Glock-18 | Fade",
			Direction: domain.DirectionSold,
			Price:     "$4.10",
			Value:     decimal.RequireFromString("4.10"),
		},
	}
}

func TestWriteTradeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTradeCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		tradeHeader,
		{"AK-47 | Redline", "$10.00", "$15.00", "$3.00 (Base: $5.00 - Stickers: $2.00)", "Bought & Sold", "Crown (Foil)", "Crown (Foil): $2.00"},
		{"Glock-18 | Fade", "", "$4.10", "", "Sold (Not Bought)", "", ""},
	}, rows)
}

func TestWriteTransactionCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionCSV(&buf, []domain.Transaction{
		{Name: "AWP | Asiimov", Price: "$80.00", Direction: domain.DirectionBought, Stickers: []string{"A", "B"}},
	}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"AWP | Asiimov", "$80.00", "Bought", "A, B"}, rows[1])
}

func TestRecordLogTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "trades.json")
	log := &RecordLog{FilePath: path}

	require.NoError(t, log.Write(sampleRecords()))
	require.NoError(t, log.Write(sampleRecords()[:1]))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec domain.TradeRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		require.Equal(t, "AK-47 | Redline", rec.Name)
		require.True(t, decimal.RequireFromString("3").Equal(rec.AdjustedProfit))
		lines++
	}
	require.Equal(t, 1, lines)
}

func TestWritePagesJSONKeepsRawResponse(t *testing.T) {
	var page domain.Page
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"results_html":"<div></div>","extra":7}`), &page))

	var buf bytes.Buffer
	require.NoError(t, WritePagesJSON(&buf, []domain.Page{page}))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, float64(7), out[0]["extra"])

	buf.Reset()
	require.NoError(t, WritePagesJSON(&buf, nil))
	require.JSONEq(t, `[]`, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return WriteInventoryJSON(w, []domain.InventoryItem{{AssetID: "1", Name: "Zeus x27"}})
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"asset_id": "1"`)
}
