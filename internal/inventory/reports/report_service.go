// Package reports loads catalog and deployment snapshots and renders the
// derived inventory views over HTTP.
package reports

import (
	"context"
	"fmt"
	"time"

	"signyard/internal/inventory/reconcile"
	"signyard/internal/repository"
	"signyard/pkg/models"
)

type CatalogReader interface {
	GetCatalog(ctx context.Context) ([]models.InventoryItem, error)
}

type DeploymentReader interface {
	GetDeployments(ctx context.Context, conditions repository.QueryBuilder) ([]models.Deployment, error)
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
}

type InvoiceReport struct {
	Deployment models.Deployment        `json:"deployment"`
	Invoice    reconcile.InvoiceDetails `json:"invoice"`
}

type ReportService struct {
	catalog     CatalogReader
	deployments DeploymentReader
}

func NewReportService(c CatalogReader, d DeploymentReader) *ReportService {
	return &ReportService{
		catalog:     c,
		deployments: d,
	}
}

func (s *ReportService) YardInventory(ctx context.Context) (reconcile.YardInventoryData, error) {
	catalog, deployments, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.YardInventory(catalog, deployments), nil
}

func (s *ReportService) TotalInventory(ctx context.Context) ([]reconcile.TotalInventoryEntry, error) {
	catalog, deployments, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.TotalInventory(catalog, deployments), nil
}

func (s *ReportService) DailyStatus(ctx context.Context, date time.Time) (reconcile.DailyInventoryStatus, error) {
	catalog, deployments, err := s.snapshot(ctx)
	if err != nil {
		return reconcile.DailyInventoryStatus{}, err
	}
	return reconcile.DailyStatus(date, catalog, deployments), nil
}

func (s *ReportService) Calendar(ctx context.Context, year int, month time.Month) (map[string]reconcile.DailyInventoryStatus, error) {
	catalog, deployments, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.CalendarStatus(year, month, catalog, deployments), nil
}

func (s *ReportService) Invoice(ctx context.Context, deploymentID string) (*InvoiceReport, error) {
	deployment, err := s.deployments.GetDeployment(ctx, deploymentID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &InvoiceReport{
		Deployment: *deployment,
		Invoice:    reconcile.Invoice(*deployment, catalog),
	}, nil
}

func (s *ReportService) snapshot(ctx context.Context) ([]models.InventoryItem, []models.Deployment, error) {
	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	deployments, err := s.deployments.GetDeployments(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load deployments: %w", err)
	}

	return catalog, deployments, nil
}
