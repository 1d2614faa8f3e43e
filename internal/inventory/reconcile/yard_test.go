package reconcile

import (
	"testing"

	"signyard/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYardInventory(t *testing.T) {
	catalog := []models.InventoryItem{
		catalogItem("Barrels", "1.00", map[string]int{"Northwest Yard": 300}),
	}
	deployments := []models.Deployment{
		deployment("PM-1003", "2024-08-01", "2024-08-05", line("Barrels", "Northwest Yard", 100)),
	}

	data := YardInventory(catalog, deployments)

	require.Contains(t, data, "Northwest Yard")
	assert.Equal(t, []YardInventoryEntry{
		{Item: "Barrels", Initial: 300, Deployed: 100, Remaining: 200},
	}, data["Northwest Yard"])
}

func TestYardInventoryCountsAllDeploymentsRegardlessOfDate(t *testing.T) {
	catalog := []models.InventoryItem{
		catalogItem("Barricades", "1.78", map[string]int{"Northwest Yard": 500}),
	}
	deployments := []models.Deployment{
		deployment("PM-1", "2020-01-01", "2020-01-02", line("Barricades", "Northwest Yard", 200)),
		deployment("PM-2", "2030-01-01", "2030-01-02", line("Barricades", "Northwest Yard", 150)),
		deployment("PM-3", "bad", "dates", line("Barricades", "Northwest Yard", 50)),
	}

	data := YardInventory(catalog, deployments)

	assert.Equal(t, YardInventoryEntry{Item: "Barricades", Initial: 500, Deployed: 400, Remaining: 100}, data["Northwest Yard"][0])
}

func TestYardInventoryAllowsNegativeRemaining(t *testing.T) {
	catalog := []models.InventoryItem{
		catalogItem("Arrow Board Trailer", "50.28", map[string]int{"Main Yard": 10}),
	}
	deployments := []models.Deployment{
		deployment("PM-1", "2024-07-01", "2024-07-02", line("Arrow Board Trailer", "Main Yard", 12)),
	}

	data := YardInventory(catalog, deployments)

	assert.Equal(t, -2, data["Main Yard"][0].Remaining)
}

func TestYardInventorySkipsEmptyStockAndUnknownLines(t *testing.T) {
	deployments := []models.Deployment{
		deployment("PM-1", "2024-07-01", "2024-07-02",
			line("Barrels", "Cromdale Yard", 5),
			line("barrels", "Northwest Yard", 7),
			line("Ghost Item", "Northwest Yard", 9),
		),
	}

	data := YardInventory(sampleCatalog(), deployments)

	assert.Len(t, data["Main Yard"], 1, "Pexco has zero stock in Main Yard and must not be listed")
	assert.Equal(t, "Arrow Board Trailer", data["Main Yard"][0].Item)

	for _, entry := range data["Northwest Yard"] {
		assert.Zero(t, entry.Deployed, "%s should not pick up lines for other names or yards", entry.Item)
	}
	for _, entry := range data["Cromdale Yard"] {
		assert.NotEqual(t, "Barrels", entry.Item)
	}
}

func TestYardInventorySortsItemsCaseInsensitively(t *testing.T) {
	catalog := []models.InventoryItem{
		catalogItem("sandbags", "1.00", map[string]int{"Main Yard": 10}),
		catalogItem("Barrels", "1.00", map[string]int{"Main Yard": 10}),
		catalogItem("aluminum Ramp", "11.52", map[string]int{"Main Yard": 10}),
		catalogItem("Crowd Control Fencing", "1.70", map[string]int{"Main Yard": 10}),
	}

	data := YardInventory(catalog, nil)

	var names []string
	for _, entry := range data["Main Yard"] {
		names = append(names, entry.Item)
	}
	assert.Equal(t, []string{"aluminum Ramp", "Barrels", "Crowd Control Fencing", "sandbags"}, names)
}

func TestYardInventoryYards(t *testing.T) {
	data := YardInventory(sampleCatalog(), nil)

	assert.Equal(t, []string{"Cromdale Yard", "Gretzky Yard", "Main Yard", "Northwest Yard"}, data.Yards())
}

func TestYardInventoryDoesNotMutateInputs(t *testing.T) {
	catalog := sampleCatalog()
	deployments := []models.Deployment{
		deployment("PM-1", "2024-07-01", "2024-07-02", line("Barrels", "Northwest Yard", 5)),
	}

	_ = YardInventory(catalog, deployments)
	_ = TotalInventory(catalog, deployments)

	assert.Equal(t, sampleCatalog(), catalog)
	assert.Equal(t, 5, deployments[0].Items[0].Quantity)
}
