// Package extract turns market history pages into transactions.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

const stickerTitlePrefix = "Sticker: "

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// first dollar amount like token, thousands separators allowed
	priceRegex = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})+|\d+)(\.\d+)?`)
	hoverRegex = regexp.MustCompile(`CreateItemHoverFromContainer\(\s*g_rgAssets\s*,\s*'([^']+)'\s*,\s*'?(\d+)'?\s*,\s*'?(\d+)'?\s*,\s*'?(\d+)'?`)
)

// Transactions extracts every listing row of every page, in page and
// document order.
func Transactions(pages []domain.Page) []domain.Transaction {
	var out []domain.Transaction
	for i, page := range pages {
		txs := PageTransactions(page)
		slog.Debug("extracted page", "page", i+1, "transactions", len(txs))
		out = append(out, txs...)
	}
	return out
}

// PageTransactions extracts the listing rows of one page. Rows with neither
// a name nor a price are skipped; other missing fields fall back to defaults.
func PageTransactions(page domain.Page) []domain.Transaction {
	if page.Blank() {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.ResultsHTML))
	if err != nil {
		slog.Debug("unparseable listing fragment", "err", err)
		return nil
	}

	var out []domain.Transaction
	doc.Find("div.market_listing_row[id]").Each(func(_ int, row *goquery.Selection) {
		rowID := row.AttrOr("id", "")

		name := collapse(row.Find("span.market_listing_item_name").First().Text())
		price := collapse(row.Find("span.market_listing_price").First().Text())
		if name == "" && price == "" {
			slog.Debug("skipping row without name and price", "row", rowID)
			return
		}

		tx := domain.Transaction{
			Name:      name,
			Price:     price,
			Value:     ParsePrice(price),
			Direction: direction(row.Find("div.market_listing_gainorloss").First().Text()),
			Stickers:  []string{},
		}
		if tx.Direction == domain.DirectionUnknown {
			slog.Debug("row without gain or loss marker", "row", rowID, "name", name)
		}

		tx.AssetID = assetID(rowID, row, page.Hovers)
		if tx.AssetID != "" {
			tx.Stickers = Stickers(page, tx.AssetID)
		}

		out = append(out, tx)
	})
	return out
}

// ParsePrice reads the first dollar amount in a displayed price, zero when
// there is none.
func ParsePrice(displayed string) decimal.Decimal {
	groups := priceRegex.FindStringSubmatch(displayed)
	if groups == nil {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(groups[1], ",", "") + groups[2])
	if err != nil {
		return decimal.Zero
	}
	return value
}

// Stickers lists the sticker names applied to an asset of the page.
func Stickers(page domain.Page, assetID string) []string {
	stickers := []string{}
	seen := map[string]bool{}
	for _, markup := range page.StickerDescriptions(assetID) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if err != nil {
			slog.Debug("unparseable sticker info", "asset", assetID, "err", err)
			continue
		}
		doc.Find("[title]").Each(func(_ int, s *goquery.Selection) {
			title := s.AttrOr("title", "")
			if !strings.HasPrefix(title, stickerTitlePrefix) {
				return
			}
			name := strings.TrimSpace(strings.TrimPrefix(title, stickerTitlePrefix))
			if name == "" || seen[name] {
				return
			}
			seen[name] = true
			stickers = append(stickers, name)
		})
	}
	return stickers
}

func direction(marker string) domain.Direction {
	switch strings.TrimSpace(marker) {
	case "+":
		return domain.DirectionBought
	case "-", "−":
		return domain.DirectionSold
	}
	return domain.DirectionUnknown
}

// assetID finds the CS2 asset behind a row from its hover script, looking in
// the row itself first and then in the page's hover scripts.
func assetID(rowID string, row *goquery.Selection, hovers string) string {
	if id := matchHover(row.Find("script").Text(), ""); id != "" {
		return id
	}
	if rowID == "" {
		return ""
	}
	return matchHover(hovers, rowID)
}

func matchHover(script, rowID string) string {
	for _, m := range hoverRegex.FindAllStringSubmatch(script, -1) {
		if m[2] != domain.CS2AppID || m[3] != domain.CS2ContextID {
			continue
		}
		if rowID != "" && !strings.HasPrefix(m[1], rowID+"_") {
			continue
		}
		return m[4]
	}
	return ""
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
