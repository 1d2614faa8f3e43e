package reconcile

import (
	"sort"

	"signyard/pkg/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type YardInventoryEntry struct {
	Item      string `json:"item"`
	Initial   int    `json:"initial"`
	Deployed  int    `json:"deployed"`
	Remaining int    `json:"remaining"`
}

// YardInventoryData groups yard inventory entries by yard name.
type YardInventoryData map[string][]YardInventoryEntry

// Yards returns the yard names in collation order.
func (d YardInventoryData) Yards() []string {
	yards := make([]string, 0, len(d))
	for yard := range d {
		yards = append(yards, yard)
	}

	collator := newCollator()
	sort.SliceStable(yards, func(i, j int) bool {
		return collator.CompareString(yards[i], yards[j]) < 0
	})

	return yards
}

// YardInventory reports, for every yard holding positive initial stock of an
// item, how much of that item has been deployed from the yard over all
// deployments and how much remains. Remaining is not clamped and goes
// negative when a yard is overcommitted.
func YardInventory(catalog []models.InventoryItem, deployments []models.Deployment) YardInventoryData {
	counts := countDeployed(deployments, nil)
	data := YardInventoryData{}

	for _, item := range catalog {
		for yard, initial := range item.InitialStock {
			if initial <= 0 {
				continue
			}
			deployed := counts.inYard(item.Item, yard)
			data[yard] = append(data[yard], YardInventoryEntry{
				Item:      item.Item,
				Initial:   initial,
				Deployed:  deployed,
				Remaining: initial - deployed,
			})
		}
	}

	collator := newCollator()
	for _, entries := range data {
		sort.SliceStable(entries, func(i, j int) bool {
			return collator.CompareString(entries[i].Item, entries[j].Item) < 0
		})
	}

	return data
}

// newCollator builds a case-insensitive collator. Collators keep internal
// buffers, so each call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
