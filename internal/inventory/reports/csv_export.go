package reports

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"signyard/internal/inventory/reconcile"
	"signyard/pkg/models"
)

var (
	yardInventoryHeader  = []string{"Yard", "Item", "Initial Stock", "Deployed", "Remaining"}
	totalInventoryHeader = []string{"Item", "Total Initial Stock", "Total Deployed", "Total Remaining"}
)

// WriteYardInventoryCSV writes one row per (yard, item), yards in collation order.
func WriteYardInventoryCSV(w io.Writer, data reconcile.YardInventoryData) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(yardInventoryHeader); err != nil {
		return err
	}

	for _, yard := range data.Yards() {
		for _, entry := range data[yard] {
			row := []string{
				yard,
				entry.Item,
				strconv.Itoa(entry.Initial),
				strconv.Itoa(entry.Deployed),
				strconv.Itoa(entry.Remaining),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteTotalInventoryCSV(w io.Writer, entries []reconcile.TotalInventoryEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(totalInventoryHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		row := []string{
			entry.Item,
			strconv.Itoa(entry.Initial),
			strconv.Itoa(entry.Deployed),
			strconv.Itoa(entry.Remaining),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func exportFilename(prefix string, now time.Time) string {
	return prefix + "_" + now.Format(models.DateLayout) + ".csv"
}
