package reconcile

import (
	"testing"

	"signyard/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice(t *testing.T) {
	d := deployment("PM-1003", "2024-08-01", "2024-08-05", line("Barrels", "Northwest Yard", 100))

	details := Invoice(d, sampleCatalog())

	require.Len(t, details.LineItems, 1)
	assert.True(t, decimal.RequireFromString("1.00").Equal(details.LineItems[0].UnitCostPerDay))
	assert.True(t, decimal.NewFromInt(500).Equal(details.LineItems[0].TotalCost), details.LineItems[0].TotalCost.String())
	assert.True(t, decimal.NewFromInt(500).Equal(details.GrandTotal))
}

func TestInvoiceUsesStoredTotalDays(t *testing.T) {
	d := deployment("PM-1", "2024-08-01", "2024-08-05", line("Barrels", "Northwest Yard", 1))
	d.TotalDays = 7

	details := Invoice(d, sampleCatalog())

	assert.True(t, decimal.NewFromInt(7).Equal(details.GrandTotal), details.GrandTotal.String())
}

func TestInvoiceGrandTotalIsSumOfLines(t *testing.T) {
	d := deployment("PM-1001", "2024-07-01", "2024-07-05",
		line("Barricades", "Northwest Yard", 200),
		line("Arrow Board Trailer", "Main Yard", 1),
		line("Temp Stands", "Gretzky Yard", 3),
	)

	details := Invoice(d, sampleCatalog())

	require.Len(t, details.LineItems, 3)
	sum := decimal.Zero
	for _, item := range details.LineItems {
		sum = sum.Add(item.TotalCost)
	}
	assert.True(t, sum.Equal(details.GrandTotal))
	// 1.78*200*5 + 50.28*1*5 + 1.95*3*5
	assert.Equal(t, "2060.65", details.GrandTotal.StringFixed(2))
	assert.Equal(t, "Temp Stands", details.LineItems[2].Item)
	assert.Equal(t, "Gretzky Yard", details.LineItems[2].Yard)
}

func TestInvoiceUnknownItemCostsNothing(t *testing.T) {
	d := deployment("PM-1", "2024-08-01", "2024-08-02",
		line("Ghost Item", "Main Yard", 40),
		line("Barrels", "Northwest Yard", 10),
	)

	details := Invoice(d, sampleCatalog())

	require.Len(t, details.LineItems, 2)
	assert.True(t, details.LineItems[0].UnitCostPerDay.IsZero())
	assert.True(t, details.LineItems[0].TotalCost.IsZero())
	assert.Equal(t, "20.00", details.GrandTotal.StringFixed(2))
}

func TestInvoiceWithoutItems(t *testing.T) {
	details := Invoice(models.Deployment{ID: "PM-EMPTY", TotalDays: 3}, sampleCatalog())

	assert.Empty(t, details.LineItems)
	assert.True(t, details.GrandTotal.IsZero())
}
