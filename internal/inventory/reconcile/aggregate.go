package reconcile

import "signyard/pkg/models"

// deployedCounts holds deployed quantities keyed by item, then yard.
type deployedCounts map[string]map[string]int

// countDeployed sums the quantity of every deployed line over the
// deployments accepted by filter. A nil filter accepts every deployment.
func countDeployed(deployments []models.Deployment, filter func(models.Deployment) bool) deployedCounts {
	counts := deployedCounts{}

	for _, deployment := range deployments {
		if filter != nil && !filter(deployment) {
			continue
		}
		for _, line := range deployment.Items {
			byYard, ok := counts[line.Item]
			if !ok {
				byYard = map[string]int{}
				counts[line.Item] = byYard
			}
			byYard[line.Yard] += line.Quantity
		}
	}

	return counts
}

func (c deployedCounts) total(item string) int {
	total := 0
	for _, quantity := range c[item] {
		total += quantity
	}
	return total
}

func (c deployedCounts) inYard(item, yard string) int {
	return c[item][yard]
}
