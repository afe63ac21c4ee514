// Package pairing matches bought and sold transactions of the same item and
// computes profit and loss.
package pairing

import (
	"log/slog"
	"strings"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// StickerPrefix marks sticker purchases, which are priced separately and
// charged against the items they end up applied to.
const StickerPrefix = "Sticker |"

type Result struct {
	Records []domain.TradeRecord
	Totals  domain.Totals
}

type ledger struct {
	bought []domain.Transaction
	sold   []domain.Transaction
}

// book groups transactions by item name, keeping first-seen name order.
type book struct {
	names []string
	items map[string]*ledger
}

func (b *book) add(tx domain.Transaction) {
	l, ok := b.items[tx.Name]
	if !ok {
		l = &ledger{}
		b.items[tx.Name] = l
		b.names = append(b.names, tx.Name)
	}
	switch tx.Direction {
	case domain.DirectionBought:
		l.bought = append(l.bought, tx)
	case domain.DirectionSold:
		l.sold = append(l.sold, tx)
	}
}

// stickerIndex keeps one purchase per full sticker name. A later purchase of
// the same name replaces the earlier one but keeps its position.
type stickerIndex struct {
	names     []string
	purchases map[string]domain.Transaction
}

func (s *stickerIndex) add(tx domain.Transaction) {
	if _, ok := s.purchases[tx.Name]; !ok {
		s.names = append(s.names, tx.Name)
	} else {
		slog.Debug("duplicate sticker purchase replaces earlier entry", "name", tx.Name, "price", tx.Price)
	}
	s.purchases[tx.Name] = tx
}

// Pair groups transactions per item and pairs the i-th bought with the i-th
// sold transaction in extraction order. Sold items carrying stickers are
// charged the recorded purchase price of each sticker.
func Pair(txs []domain.Transaction) Result {
	items := &book{items: map[string]*ledger{}}
	stickers := &stickerIndex{purchases: map[string]domain.Transaction{}}

	for _, tx := range txs {
		if strings.HasPrefix(tx.Name, StickerPrefix) {
			stickers.add(tx)
			continue
		}
		if tx.Direction == domain.DirectionUnknown {
			slog.Debug("transaction without direction left out of pairing", "name", tx.Name)
		}
		items.add(tx)
	}

	var res Result
	for _, name := range items.names {
		l := items.items[name]
		pairs := min(len(l.bought), len(l.sold))

		for i := 0; i < pairs; i++ {
			rec := matched(name, l.bought[i], l.sold[i], stickers)
			res.Totals.MatchedProfit = res.Totals.MatchedProfit.Add(rec.AdjustedProfit)
			res.Records = append(res.Records, rec)
		}
		for _, tx := range l.bought[pairs:] {
			res.Totals.BoughtOnlyValue = res.Totals.BoughtOnlyValue.Add(tx.Value)
			res.Records = append(res.Records, single(domain.KindBoughtOnly, tx))
		}
		for _, tx := range l.sold[pairs:] {
			res.Totals.SoldOnlyValue = res.Totals.SoldOnlyValue.Add(tx.Value)
			res.Records = append(res.Records, single(domain.KindSoldOnly, tx))
		}
	}

	for _, name := range stickers.names {
		tx := stickers.purchases[name]
		if tx.Direction == domain.DirectionBought {
			res.Totals.StickerInvestment = res.Totals.StickerInvestment.Add(tx.Value)
		}
		rec := single(domain.KindSticker, tx)
		rec.Stickers = nil
		res.Records = append(res.Records, rec)
	}

	return res
}

func matched(name string, bought, sold domain.Transaction, stickers *stickerIndex) domain.TradeRecord {
	rec := domain.TradeRecord{
		Kind:        domain.KindMatched,
		Name:        name,
		BoughtPrice: bought.Price,
		SoldPrice:   sold.Price,
		BoughtValue: bought.Value,
		SoldValue:   sold.Value,
		BaseProfit:  sold.Value.Sub(bought.Value),
		StickerCost: decimal.Zero,
		Stickers:    union(bought.Stickers, sold.Stickers),
	}

	if sold.HasStickers() {
		for _, sticker := range sold.Stickers {
			purchase, ok := stickers.purchases[StickerPrefix+" "+sticker]
			if !ok {
				slog.Debug("no purchase recorded for applied sticker", "item", name, "sticker", sticker)
				continue
			}
			rec.StickerCost = rec.StickerCost.Add(purchase.Value)
			rec.StickerCosts = append(rec.StickerCosts, domain.StickerCost{Name: sticker, Price: purchase.Value})
		}
	}

	rec.AdjustedProfit = rec.BaseProfit.Sub(rec.StickerCost)
	return rec
}

func single(kind domain.RecordKind, tx domain.Transaction) domain.TradeRecord {
	return domain.TradeRecord{
		Kind:      kind,
		Name:      tx.Name,
		Direction: tx.Direction,
		Price:     tx.Price,
		Value:     tx.Value,
		Stickers:  tx.Stickers,
	}
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
