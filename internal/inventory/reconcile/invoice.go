package reconcile

import (
	"signyard/pkg/models"

	"github.com/shopspring/decimal"
)

type InvoiceLineItem struct {
	Item           string          `json:"item"`
	Yard           string          `json:"yard"`
	Quantity       int             `json:"quantity"`
	UnitCostPerDay decimal.Decimal `json:"unit_cost_per_day"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

type InvoiceDetails struct {
	LineItems  []InvoiceLineItem `json:"line_items"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}

// Invoice prices every deployed line as cost per day × quantity × the
// deployment's stored TotalDays. Items missing from the catalog cost 0.
func Invoice(deployment models.Deployment, catalog []models.InventoryItem) InvoiceDetails {
	costs := make(map[string]decimal.Decimal, len(catalog))
	for _, item := range catalog {
		costs[item.Item] = item.CostPerDay
	}

	days := decimal.NewFromInt(int64(deployment.TotalDays))
	details := InvoiceDetails{
		LineItems:  make([]InvoiceLineItem, 0, len(deployment.Items)),
		GrandTotal: decimal.Zero,
	}

	for _, line := range deployment.Items {
		unitCost, ok := costs[line.Item]
		if !ok {
			unitCost = decimal.Zero
		}
		total := unitCost.Mul(decimal.NewFromInt(int64(line.Quantity))).Mul(days)

		details.LineItems = append(details.LineItems, InvoiceLineItem{
			Item:           line.Item,
			Yard:           line.Yard,
			Quantity:       line.Quantity,
			UnitCostPerDay: unitCost,
			TotalCost:      total,
		})
		details.GrandTotal = details.GrandTotal.Add(total)
	}

	return details
}
