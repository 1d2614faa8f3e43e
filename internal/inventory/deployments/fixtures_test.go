package deployments

import (
	"signyard/pkg/models"

	"github.com/shopspring/decimal"
)

func testCatalog() []models.InventoryItem {
	return []models.InventoryItem{
		{Category: "Barricade", Item: "Barricades", CostPerDay: decimal.RequireFromString("1.78"), InitialStock: map[string]int{"Northwest Yard": 500}},
		{Category: "Miscellaneous Items", Item: "Temp Stands", CostPerDay: decimal.RequireFromString("1.95"), InitialStock: map[string]int{"Cromdale Yard": 250, "Gretzky Yard": 250}},
		{Category: "Delineator Device", Item: "Pexco", CostPerDay: decimal.NewFromInt(1), InitialStock: map[string]int{}},
	}
}

func validRequest() DeploymentRequest {
	return DeploymentRequest{
		ID:             "PM-1004",
		ChargeOut:      "Client D",
		Event:          "Community Block Party",
		DeploymentDate: "2024-09-05",
		CompletionDate: "2024-09-10",
		DropOffDate:    "2024-09-04",
		PickUpDate:     "2024-09-11",
		Location:       &LocationRequest{Street: "118 Ave", Avenue: "95 St"},
		Items: []DeployedItemRequest{
			{Item: "Temp Stands", Yard: "Gretzky Yard", Quantity: 50},
		},
	}
}
