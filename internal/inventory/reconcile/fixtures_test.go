package reconcile

import (
	"signyard/pkg/models"

	"github.com/shopspring/decimal"
)

func catalogItem(name string, cost string, stock map[string]int) models.InventoryItem {
	return models.InventoryItem{
		Category:     "Test",
		Item:         name,
		CostPerDay:   decimal.RequireFromString(cost),
		InitialStock: stock,
	}
}

func deployment(id, from, to string, lines ...models.DeployedItem) models.Deployment {
	return models.Deployment{
		ID:             id,
		ChargeOut:      "Client",
		Event:          "Event " + id,
		DeploymentDate: from,
		CompletionDate: to,
		TotalDays:      TotalDays(from, to),
		Items:          lines,
	}
}

func line(item, yard string, quantity int) models.DeployedItem {
	return models.DeployedItem{Item: item, Yard: yard, Quantity: quantity}
}

func sampleCatalog() []models.InventoryItem {
	return []models.InventoryItem{
		catalogItem("Barrels", "1.00", map[string]int{"Northwest Yard": 300}),
		catalogItem("Barricades", "1.78", map[string]int{"Northwest Yard": 500}),
		catalogItem("Temp Stands", "1.95", map[string]int{"Cromdale Yard": 250, "Gretzky Yard": 250}),
		catalogItem("Arrow Board Trailer", "50.28", map[string]int{"Main Yard": 10}),
		catalogItem("Knock Down Markers", "1.00", map[string]int{}),
		catalogItem("Pexco", "1.00", map[string]int{"Main Yard": 0}),
	}
}
