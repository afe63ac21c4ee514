package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPageDecodeAliases(t *testing.T) {
	body := `{
		"success": true,
		"html": "<div>row</div>",
		"page_size": "50",
		"total_count": 120,
		"current_page": 2,
		"total_pages": null,
		"assets": []
	}`

	var page Page
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	require.Equal(t, "<div>row</div>", page.ResultsHTML)
	require.Equal(t, Int(50), page.PageSize)
	require.Equal(t, Int(120), page.TotalCount)
	require.Equal(t, Int(2), page.CurrentPage)
	require.False(t, page.TotalPages.Valid)
	require.False(t, page.Start.Valid)
	require.Nil(t, page.Assets)
	require.JSONEq(t, body, string(page.Raw))
}

func TestPageDecodeNonStringFragments(t *testing.T) {
	var page Page
	require.NoError(t, json.Unmarshal([]byte(`{"success": true, "results_html": false, "hovers": null, "total_count": 0}`), &page))
	require.Empty(t, page.ResultsHTML)
	require.Empty(t, page.Hovers)
	require.True(t, page.Blank())

	require.NoError(t, json.Unmarshal([]byte(`{"results_html": 0, "html": "<div>row</div>", "hovers": 7}`), &page))
	require.Equal(t, "<div>row</div>", page.ResultsHTML)
	require.Empty(t, page.Hovers)
}

func TestPageStickerDescriptions(t *testing.T) {
	body := `{
		"results_html": "x",
		"assets": {"730": {"2": {"111": {"descriptions": [
			{"type": "html", "value": "Exterior: Field-Tested"},
			{"type": "html", "name": "sticker_info", "value": "<center>stickers</center>"}
		]}}}}
	}`

	var page Page
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	require.Equal(t, []string{"<center>stickers</center>"}, page.StickerDescriptions("111"))
	require.Empty(t, page.StickerDescriptions("222"))
}

func TestPageBlank(t *testing.T) {
	require.True(t, Page{ResultsHTML: " \n\t "}.Blank())
	require.False(t, Page{ResultsHTML: "<div></div>"}.Blank())
}

func TestPaginationStateNext(t *testing.T) {
	offset := PaginationState{Mode: ModeOffsetCount, Cursor: 0, Step: 100}.Next()
	require.Equal(t, Params{"start": 100, "count": 100}, offset.Params())

	page := PaginationState{Mode: ModePageNumber, Cursor: 1}.Next()
	require.Equal(t, Params{"page": 2}, page.Params())
}

func TestTotalsNet(t *testing.T) {
	totals := Totals{
		MatchedProfit:     decimal.RequireFromString("5"),
		SoldOnlyValue:     decimal.RequireFromString("3.50"),
		BoughtOnlyValue:   decimal.RequireFromString("2"),
		StickerInvestment: decimal.RequireFromString("0.25"),
	}
	require.Equal(t, "6.25", totals.Net().StringFixed(2))
}

func TestTradeRecordProfitLoss(t *testing.T) {
	rec := TradeRecord{
		Kind:           KindMatched,
		BaseProfit:     decimal.RequireFromString("7"),
		StickerCost:    decimal.RequireFromString("2"),
		AdjustedProfit: decimal.RequireFromString("5"),
	}
	require.Equal(t, "$5.00 (Base: $7.00 - Stickers: $2.00)", rec.ProfitLoss())

	rec.StickerCost = decimal.Zero
	rec.AdjustedProfit = decimal.RequireFromString("-1.5")
	require.Equal(t, "$-1.50", rec.ProfitLoss())

	sticker := TradeRecord{Kind: KindSticker, Direction: DirectionBought, Price: "$2.00"}
	require.Equal(t, "Sticker Bought", sticker.TransactionType())
	bought, sold := sticker.Columns()
	require.Equal(t, "$2.00", bought)
	require.Empty(t, sold)
}
