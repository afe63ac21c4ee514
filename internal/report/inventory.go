package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

// Inventory lists items grouped by their type, types in alphabetical order.
func Inventory(w io.Writer, items []domain.InventoryItem) {
	fmt.Fprintf(w, "\nFound %d items in inventory\n", len(items))
	if len(items) == 0 {
		return
	}

	byType := map[string][]domain.InventoryItem{}
	for _, item := range items {
		kind := item.Type
		if kind == "" {
			kind = "Unknown"
		}
		byType[kind] = append(byType[kind], item)
	}

	types := make([]string, 0, len(byType))
	for kind := range byType {
		types = append(types, kind)
	}
	slices.Sort(types)

	t := newTable(w)
	t.AppendHeader(table.Row{"Type", "Name", "Amount", "Tradable", "Marketable"})
	for _, kind := range types {
		group := byType[kind]
		slices.SortStableFunc(group, func(a, b domain.InventoryItem) int { return cmp.Compare(a.Name, b.Name) })
		for _, item := range group {
			t.AppendRow(table.Row{kind, item.Name, item.Amount, yesNo(item.Tradable), yesNo(item.Marketable)})
		}
		t.AppendSeparator()
	}
	t.Render()
}

func yesNo(flag int) string {
	if flag == 1 {
		return "yes"
	}
	return "no"
}
