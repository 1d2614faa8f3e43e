package reconcile

import (
	"time"

	"signyard/pkg/metadata"
	"signyard/pkg/models"
)

// CalendarStatus runs DailyStatus for every day of the month and keeps the
// days that are not ok, keyed by their YYYY-MM-DD date.
func CalendarStatus(year int, month time.Month, catalog []models.InventoryItem, deployments []models.Deployment) map[string]DailyInventoryStatus {
	statuses := make(map[string]DailyInventoryStatus)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	for day := 0; day < daysInMonth; day++ {
		date := first.AddDate(0, 0, day)
		status := DailyStatus(date, catalog, deployments)
		if status.Status != metadata.StatusOK {
			statuses[date.Format(models.DateLayout)] = status
		}
	}

	return statuses
}
