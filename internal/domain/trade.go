package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RecordKind string

const (
	KindMatched    RecordKind = "matched"
	KindBoughtOnly RecordKind = "bought_only"
	KindSoldOnly   RecordKind = "sold_only"
	KindSticker    RecordKind = "sticker"
)

type StickerCost struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TradeRecord is one row of the pairing result. Matched records carry both
// sides; the other kinds carry a single Price/Value and its Direction.
type TradeRecord struct {
	Kind      RecordKind `json:"kind"`
	Name      string     `json:"name"`
	Direction Direction  `json:"direction,omitempty"`

	BoughtPrice string          `json:"bought_price,omitempty"`
	SoldPrice   string          `json:"sold_price,omitempty"`
	BoughtValue decimal.Decimal `json:"bought_value"`
	SoldValue   decimal.Decimal `json:"sold_value"`

	Price string          `json:"price,omitempty"`
	Value decimal.Decimal `json:"value"`

	BaseProfit     decimal.Decimal `json:"base_profit"`
	StickerCost    decimal.Decimal `json:"sticker_cost"`
	AdjustedProfit decimal.Decimal `json:"adjusted_profit"`

	Stickers     []string      `json:"stickers,omitempty"`
	StickerCosts []StickerCost `json:"sticker_costs,omitempty"`
}

// TransactionType is the human readable record label used in exports.
func (r TradeRecord) TransactionType() string {
	switch r.Kind {
	case KindMatched:
		return "Bought & Sold"
	case KindBoughtOnly:
		return "Bought (Not Sold)"
	case KindSoldOnly:
		return "Sold (Not Bought)"
	default:
		return "Sticker " + string(r.Direction)
	}
}

// Columns returns the displayed bought and sold prices.
func (r TradeRecord) Columns() (bought, sold string) {
	if r.Kind == KindMatched {
		return r.BoughtPrice, r.SoldPrice
	}
	switch r.Direction {
	case DirectionBought:
		return r.Price, ""
	case DirectionSold:
		return "", r.Price
	}
	return "", ""
}

// ProfitLoss renders the adjusted profit of a matched record.
func (r TradeRecord) ProfitLoss() string {
	if r.Kind != KindMatched {
		return ""
	}
	if r.StickerCost.IsPositive() {
		return fmt.Sprintf("%s (Base: %s - Stickers: %s)",
			Dollars(r.AdjustedProfit), Dollars(r.BaseProfit), Dollars(r.StickerCost))
	}
	return Dollars(r.AdjustedProfit)
}

func (r TradeRecord) StickerList() string {
	return strings.Join(r.Stickers, ", ")
}

func (r TradeRecord) StickerCostDetails() string {
	parts := make([]string, 0, len(r.StickerCosts))
	for _, c := range r.StickerCosts {
		parts = append(parts, fmt.Sprintf("%s: %s", c.Name, Dollars(c.Price)))
	}
	return strings.Join(parts, "; ")
}

// Totals are the aggregates over a pairing result.
type Totals struct {
	MatchedProfit     decimal.Decimal `json:"matched_profit"`
	BoughtOnlyValue   decimal.Decimal `json:"bought_only_value"`
	SoldOnlyValue     decimal.Decimal `json:"sold_only_value"`
	StickerInvestment decimal.Decimal `json:"sticker_investment"`
}

// Net is matched profit plus unmatched revenue minus unmatched and sticker spend.
func (t Totals) Net() decimal.Decimal {
	return t.MatchedProfit.
		Add(t.SoldOnlyValue).
		Sub(t.BoughtOnlyValue).
		Sub(t.StickerInvestment)
}

func Dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
