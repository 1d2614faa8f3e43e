package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InventoryItem is a catalog entry. Item is the catalog key.
type InventoryItem struct {
	Category     string          `json:"category" yaml:"category"`
	Item         string          `json:"item" yaml:"item"`
	CostPerDay   decimal.Decimal `json:"cost_per_day" yaml:"cost_per_day"`
	InitialStock map[string]int  `json:"initial_stock" yaml:"initial_stock"`
}

// TotalInitialStock sums the initial stock over every yard.
func (i InventoryItem) TotalInitialStock() int {
	total := 0
	for _, count := range i.InitialStock {
		total += count
	}
	return total
}

// StocksYard reports whether the item has a positive initial stock in the yard.
func (i InventoryItem) StocksYard(yard string) bool {
	return i.InitialStock[yard] > 0
}

type FlatCatalogRecord struct {
	Category     string  `db:"category"`
	Item         string  `db:"item"`
	CostPerDay   string  `db:"cost_per_day"`
	Yard         *string `db:"yard"`
	InitialStock *int    `db:"initial_stock"`
}

// TransformToCatalog folds joined item/stock rows back into catalog items.
// Rows of one item must be adjacent; item order is preserved.
func TransformToCatalog(records []FlatCatalogRecord) ([]InventoryItem, error) {
	items := make([]InventoryItem, 0, len(records))
	index := make(map[string]int, len(records))

	for _, record := range records {
		pos, seen := index[record.Item]
		if !seen {
			cost, err := decimal.NewFromString(record.CostPerDay)
			if err != nil {
				return nil, fmt.Errorf("invalid cost %q for item %q: %w", record.CostPerDay, record.Item, err)
			}
			items = append(items, InventoryItem{
				Category:     record.Category,
				Item:         record.Item,
				CostPerDay:   cost,
				InitialStock: map[string]int{},
			})
			pos = len(items) - 1
			index[record.Item] = pos
		}

		if record.Yard != nil && record.InitialStock != nil {
			items[pos].InitialStock[*record.Yard] = *record.InitialStock
		}
	}

	return items, nil
}
