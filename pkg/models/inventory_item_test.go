package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestTransformToCatalog(t *testing.T) {
	records := []FlatCatalogRecord{
		{Category: "Miscellaneous Items", Item: "Temp Stands", CostPerDay: "1.95", Yard: strPtr("Cromdale Yard"), InitialStock: intPtr(250)},
		{Category: "Miscellaneous Items", Item: "Temp Stands", CostPerDay: "1.95", Yard: strPtr("Gretzky Yard"), InitialStock: intPtr(250)},
		{Category: "Delineator Device", Item: "Pexco", CostPerDay: "1.00"},
		{Category: "Barricade", Item: "Barricades", CostPerDay: "1.78", Yard: strPtr("Northwest Yard"), InitialStock: intPtr(500)},
	}

	items, err := TransformToCatalog(records)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Temp Stands", items[0].Item)
	assert.Equal(t, map[string]int{"Cromdale Yard": 250, "Gretzky Yard": 250}, items[0].InitialStock)
	assert.Equal(t, 500, items[0].TotalInitialStock())
	assert.True(t, items[0].StocksYard("Gretzky Yard"))
	assert.False(t, items[0].StocksYard("Main Yard"))

	assert.Equal(t, "Pexco", items[1].Item)
	assert.Empty(t, items[1].InitialStock)
	assert.NotNil(t, items[1].InitialStock)

	assert.Equal(t, "1.78", items[2].CostPerDay.StringFixed(2))
}

func TestTransformToCatalogRejectsBadCost(t *testing.T) {
	_, err := TransformToCatalog([]FlatCatalogRecord{{Item: "Barrels", CostPerDay: "one"}})

	assert.Error(t, err)
}
