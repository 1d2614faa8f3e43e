package catalog

import (
	"context"
	"fmt"

	"signyard/internal/repository"
	"signyard/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// CostScale is the number of decimals stored for a daily cost.
const CostScale = 2

type CatalogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CatalogRepository {
	return &CatalogRepository{
		repository: r,
	}
}

// GetCatalog returns every catalog item in insertion order with its
// per-yard initial stock.
func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]models.InventoryItem, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("ci.category").As("category"),
			goqu.I("ci.item").As("item"),
			goqu.I("ci.cost_per_day").As("cost_per_day"),
			goqu.I("cs.yard").As("yard"),
			goqu.I("cs.initial_stock").As("initial_stock"),
		).
		From(goqu.T("catalog_items").As("ci")).
		LeftJoin(goqu.T("catalog_stock").As("cs"), goqu.On(goqu.Ex{"cs.item": goqu.I("ci.item")})).
		Order(goqu.I("ci.position").Asc(), goqu.I("cs.yard").Asc())

	var records []models.FlatCatalogRecord
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to select catalog from database: %w", err)
	}

	return models.TransformToCatalog(records)
}

func (r *CatalogRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	_, err := r.repository.GoquDBWrapper.
		Select(goqu.COUNT(goqu.Star())).
		From("catalog_items").
		Executor().
		ScanValContext(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}

	return count, nil
}

// ReplaceCatalog swaps the whole catalog inside one transaction. Costs with
// more than CostScale decimals are rejected rather than rounded.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, items []models.InventoryItem) error {
	for _, item := range items {
		if !item.CostPerDay.Equal(item.CostPerDay.Round(CostScale)) {
			return fmt.Errorf("cost of %q has more than %d decimals: %s", item.Item, CostScale, item.CostPerDay)
		}
	}

	return r.repository.Transaction(ctx, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("catalog_stock").Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear catalog stock: %w", err)
		}
		if _, err := tx.Delete("catalog_items").Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear catalog items: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		itemRows := make([]interface{}, 0, len(items))
		var stockRows []interface{}
		for position, item := range items {
			itemRows = append(itemRows, goqu.Record{
				"item":         item.Item,
				"category":     item.Category,
				"cost_per_day": item.CostPerDay.StringFixed(CostScale),
				"position":     position,
			})
			for yard, count := range item.InitialStock {
				stockRows = append(stockRows, goqu.Record{
					"item":          item.Item,
					"yard":          yard,
					"initial_stock": count,
				})
			}
		}

		if _, err := tx.Insert("catalog_items").Rows(itemRows...).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert catalog items: %w", err)
		}

		if len(stockRows) > 0 {
			if _, err := tx.Insert("catalog_stock").Rows(stockRows...).Executor().ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to insert catalog stock: %w", err)
			}
		}

		return nil
	})
}
