package container

import (
	"context"
	"database/sql"
	"fmt"

	"signyard/internal/core/config"
	"signyard/internal/integrations/googlesheets"
	"signyard/internal/inventory/catalog"
	"signyard/internal/inventory/deployments"
	"signyard/internal/inventory/reports"
	"signyard/internal/middleware"
	"signyard/internal/repository"
	"signyard/internal/seed"
	"signyard/internal/syncer"
	"signyard/internal/vault"

	"go.uber.org/zap"
)

const Version = "1.0.0"

type Container struct {
	Repository *repository.Repository

	CatalogRepository    *catalog.CatalogRepository
	DeploymentRepository *deployments.DeploymentRepository
	DeploymentService    *deployments.DeploymentService
	ReportService        *reports.ReportService
	Syncer               *syncer.Syncer
	Seeder               *seed.Seeder

	HealthChecker     *middleware.HealthChecker
	CatalogHandler    *catalog.CatalogHandler
	DeploymentHandler *deployments.DeploymentHandler
	ReportHandler     *reports.ReportHandler
	SyncHandler       *syncer.SyncHandler
}

// NewAppContainer wires every store, service and handler on top of db.
// dialect is the goqu dialect matching db.
func NewAppContainer(ctx context.Context, cfg *config.Config, db *sql.DB, dialect string, log *zap.Logger) (*Container, error) {
	sealer, err := vault.NewFromHex(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY: %w", err)
	}

	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	repo := repository.NewRepository(db, dialect)
	catalogRepo := catalog.NewRepository(repo)
	deploymentRepo := deployments.NewRepository(repo, sealer)

	deploymentService := deployments.NewDeploymentService(deploymentRepo, catalogRepo, log)
	reportService := reports.NewReportService(catalogRepo, deploymentRepo)
	sync := syncer.New(deploymentRepo, publisher, cfg.SyncInterval, log)
	deploymentService.OnSaved(sync.Trigger)

	return &Container{
		Repository:           repo,
		CatalogRepository:    catalogRepo,
		DeploymentRepository: deploymentRepo,
		DeploymentService:    deploymentService,
		ReportService:        reportService,
		Syncer:               sync,
		Seeder:               seed.NewSeeder(catalogRepo, deploymentRepo, log),
		HealthChecker:        middleware.NewHealthChecker(db, deploymentRepo, Version),
		CatalogHandler:       catalog.NewCatalogHandler(catalogRepo),
		DeploymentHandler:    deployments.NewDeploymentHandler(deploymentService),
		ReportHandler:        reports.NewReportHandler(reportService),
		SyncHandler:          syncer.NewSyncHandler(sync),
	}, nil
}

func newPublisher(ctx context.Context, cfg *config.Config, log *zap.Logger) (syncer.Publisher, error) {
	if !cfg.SheetsEnabled() {
		log.Info("Google Sheets sync disabled, deployments will be logged only")
		return syncer.NewLogPublisher(log), nil
	}

	publisher, err := googlesheets.NewPublisher(ctx, cfg.Sheets, log)
	if err != nil {
		return nil, fmt.Errorf("google sheets publisher: %w", err)
	}
	return publisher, nil
}
