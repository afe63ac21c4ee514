package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Direction is the side of a market transaction as shown by the gain/loss marker.
type Direction string

const (
	DirectionBought  Direction = "Bought"
	DirectionSold    Direction = "Sold"
	DirectionUnknown Direction = "Unknown"
)

// Transaction is one listing row scraped from a history page.
type Transaction struct {
	Name      string          `json:"name"`
	Price     string          `json:"price"`
	Value     decimal.Decimal `json:"price_value"`
	Direction Direction       `json:"transaction_type"`
	Stickers  []string        `json:"stickers"`
	AssetID   string          `json:"asset_id,omitempty"`
}

func (t Transaction) HasStickers() bool {
	return len(t.Stickers) > 0
}

// InventoryItem is an asset joined with its description.
type InventoryItem struct {
	AssetID        string `json:"asset_id"`
	ClassID        string `json:"class_id"`
	InstanceID     string `json:"instance_id"`
	Amount         string `json:"amount"`
	Name           string `json:"name"`
	MarketName     string `json:"market_name"`
	MarketHashName string `json:"market_hash_name"`
	Type           string `json:"type"`
	Tradable       int    `json:"tradable"`
	Marketable     int    `json:"marketable"`
	Commodity      int    `json:"commodity"`
	IconURL        string `json:"icon_url"`
	IconURLLarge   string `json:"icon_url_large"`
	NameColor      string `json:"name_color"`
	Tags           []Tag  `json:"tags,omitempty"`
}

type Tag struct {
	Category         string `json:"category"`
	InternalName     string `json:"internal_name"`
	LocalizedTagName string `json:"localized_tag_name"`
}

// Params are the query parameters of a single history request.
type Params map[string]int

// Fetcher defines the interface for retrieving market history pages
type Fetcher interface {
	FetchPage(ctx context.Context, params Params) (Page, error)
}

// InventorySource defines the interface for retrieving a public inventory
type InventorySource interface {
	FetchInventory(ctx context.Context, profile string) ([]InventoryItem, error)
}
