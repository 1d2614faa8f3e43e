package reconcile

import (
	"sort"
	"time"

	"signyard/pkg/metadata"
	"signyard/pkg/models"
)

const (
	// An item with fewer units left than this is critical whatever its share.
	criticalRemaining = 3
	// An item with less than this share of its initial stock left is critical.
	criticalShare = 0.10
)

type CriticalItem struct {
	Item      string `json:"item"`
	Remaining int    `json:"remaining"`
	Initial   int    `json:"initial"`
}

type DailyInventoryStatus struct {
	Status        metadata.Status `json:"status"`
	CriticalItems []CriticalItem  `json:"critical_items"`
}

// DailyStatus classifies stock health on the calendar day of date. Only
// deployments whose deployment..completion window covers that day count;
// drop-off and pick-up dates are ignored. Critical items are listed most
// depleted first.
func DailyStatus(date time.Time, catalog []models.InventoryItem, deployments []models.Deployment) DailyInventoryStatus {
	target := midnight(date)
	counts := countDeployed(deployments, func(d models.Deployment) bool {
		return isActiveOn(d, target)
	})

	critical := []CriticalItem{}
	for _, item := range catalog {
		initial := item.TotalInitialStock()
		if initial <= 0 {
			continue
		}
		remaining := initial - counts.total(item.Item)
		share := float64(remaining) / float64(initial)

		if remaining <= 0 || remaining < criticalRemaining || share < criticalShare {
			critical = append(critical, CriticalItem{
				Item:      item.Item,
				Remaining: remaining,
				Initial:   initial,
			})
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].Remaining < critical[j].Remaining
	})

	return DailyInventoryStatus{
		Status:        classify(critical),
		CriticalItems: critical,
	}
}

// classify checks red, orange and yellow in that order; the first match wins.
func classify(critical []CriticalItem) metadata.Status {
	for _, item := range critical {
		if item.Remaining <= 0 {
			return metadata.StatusRed
		}
	}
	for _, item := range critical {
		if item.Remaining < criticalRemaining {
			return metadata.StatusOrange
		}
	}
	if len(critical) > 0 {
		return metadata.StatusYellow
	}
	return metadata.StatusOK
}

// isActiveOn reports whether day falls inside the deployment window,
// both ends included. Deployments with unreadable dates are never active.
func isActiveOn(d models.Deployment, day time.Time) bool {
	start, ok := parseDate(d.DeploymentDate)
	if !ok {
		return false
	}
	end, ok := parseDate(d.CompletionDate)
	if !ok {
		return false
	}
	return !day.Before(start) && !day.After(end)
}
