// Package seed loads catalog and deployment fixtures into an empty store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"signyard/internal/inventory/catalog"
	"signyard/internal/inventory/reconcile"
	custom_error "signyard/pkg/errors"
	"signyard/pkg/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type Data struct {
	Catalog     []models.InventoryItem `yaml:"catalog"`
	Deployments []models.Deployment    `yaml:"deployments"`
}

type CatalogStore interface {
	CountItems(ctx context.Context) (int, error)
	ReplaceCatalog(ctx context.Context, items []models.InventoryItem) error
}

type DeploymentWriter interface {
	CreateDeployment(ctx context.Context, deployment models.Deployment) error
}

type Result struct {
	Skipped             bool
	CatalogItems        int
	Deployments         int
	ExistingDeployments int
}

type Seeder struct {
	catalog     CatalogStore
	deployments DeploymentWriter
	log         *zap.Logger
}

func NewSeeder(c CatalogStore, d DeploymentWriter, log *zap.Logger) *Seeder {
	return &Seeder{
		catalog:     c,
		deployments: d,
		log:         log,
	}
}

// Default returns the bundled demo data.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]bool, len(data.Catalog))
	for i, item := range data.Catalog {
		if item.Item == "" {
			return nil, fmt.Errorf("catalog entry %d has no item name", i+1)
		}
		if seen[item.Item] {
			return nil, fmt.Errorf("catalog item %q is listed twice", item.Item)
		}
		seen[item.Item] = true

		if item.CostPerDay.IsNegative() {
			return nil, fmt.Errorf("catalog item %q has a negative cost", item.Item)
		}
		if !item.CostPerDay.Equal(item.CostPerDay.Round(catalog.CostScale)) {
			return nil, fmt.Errorf("catalog item %q cost %s has more than %d decimals", item.Item, item.CostPerDay, catalog.CostScale)
		}
		for yard, count := range item.InitialStock {
			if count < 0 {
				return nil, fmt.Errorf("catalog item %q has negative stock at %s", item.Item, yard)
			}
		}
		if data.Catalog[i].InitialStock == nil {
			data.Catalog[i].InitialStock = map[string]int{}
		}
	}

	ids := make(map[string]bool, len(data.Deployments))
	for i, deployment := range data.Deployments {
		if deployment.ID == "" {
			return nil, fmt.Errorf("deployment %d has no id", i+1)
		}
		if ids[deployment.ID] {
			return nil, fmt.Errorf("deployment %s is listed twice", deployment.ID)
		}
		ids[deployment.ID] = true

		if reconcile.TotalDays(deployment.DeploymentDate, deployment.CompletionDate) == 0 {
			return nil, fmt.Errorf("deployment %s: completion date %q must be a date on or after deployment date %q",
				deployment.ID, deployment.CompletionDate, deployment.DeploymentDate)
		}
		for j, line := range deployment.Items {
			if line.Quantity <= 0 {
				return nil, fmt.Errorf("deployment %s: item %d must have a positive quantity", deployment.ID, j+1)
			}
		}
	}

	return &data, nil
}

// Seed writes data when the catalog is empty, or unconditionally replaces
// the catalog when force is set. Seeded deployments count as already synced
// and deployments that already exist are left untouched.
func (s *Seeder) Seed(ctx context.Context, data *Data, force bool) (Result, error) {
	count, err := s.catalog.CountItems(ctx)
	if err != nil {
		return Result{}, err
	}
	if count > 0 && !force {
		s.log.Info("Store already holds a catalog, skipping seed", zap.Int("catalog_items", count))
		return Result{Skipped: true}, nil
	}

	if err := s.catalog.ReplaceCatalog(ctx, data.Catalog); err != nil {
		return Result{}, fmt.Errorf("seed catalog: %w", err)
	}
	result := Result{CatalogItems: len(data.Catalog)}

	for _, deployment := range data.Deployments {
		deployment.TotalDays = reconcile.TotalDays(deployment.DeploymentDate, deployment.CompletionDate)
		deployment.Synced = true

		err := s.deployments.CreateDeployment(ctx, deployment)
		var unique *custom_error.UniqueViolationError
		switch {
		case errors.As(err, &unique):
			result.ExistingDeployments++
		case err != nil:
			return result, fmt.Errorf("seed deployment %s: %w", deployment.ID, err)
		default:
			result.Deployments++
		}
	}

	s.log.Info("Store seeded",
		zap.Int("catalog_items", result.CatalogItems),
		zap.Int("deployments", result.Deployments),
		zap.Int("existing_deployments", result.ExistingDeployments),
	)

	return result, nil
}
