package reconcile

import "signyard/pkg/models"

type TotalInventoryEntry struct {
	Item      string `json:"item"`
	Initial   int    `json:"initial"`
	Deployed  int    `json:"deployed"`
	Remaining int    `json:"remaining"`
}

// TotalInventory aggregates stock over all yards, in catalog order. Items
// without any initial stock are left out.
func TotalInventory(catalog []models.InventoryItem, deployments []models.Deployment) []TotalInventoryEntry {
	counts := countDeployed(deployments, nil)
	entries := make([]TotalInventoryEntry, 0, len(catalog))

	for _, item := range catalog {
		initial := item.TotalInitialStock()
		if initial <= 0 {
			continue
		}
		deployed := counts.total(item.Item)
		entries = append(entries, TotalInventoryEntry{
			Item:      item.Item,
			Initial:   initial,
			Deployed:  deployed,
			Remaining: initial - deployed,
		})
	}

	return entries
}
