package deployments

import (
	"context"
	"errors"
	"fmt"

	"signyard/internal/inventory/reconcile"
	"signyard/internal/repository"
	custom_error "signyard/pkg/errors"
	"signyard/pkg/models"

	"go.uber.org/zap"
)

var ErrDuplicateDeployment = errors.New("deployment already exists")

type DeploymentStore interface {
	GetDeployments(ctx context.Context, conditions repository.QueryBuilder) ([]models.Deployment, error)
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	CreateDeployment(ctx context.Context, deployment models.Deployment) error
	ReplaceDeployment(ctx context.Context, deployment models.Deployment) error
}

type CatalogReader interface {
	GetCatalog(ctx context.Context) ([]models.InventoryItem, error)
}

type SaveResult struct {
	Deployment models.Deployment `json:"deployment"`
	Warnings   []string          `json:"warnings,omitempty"`
}

type DeploymentService struct {
	store   DeploymentStore
	catalog CatalogReader
	log     *zap.Logger
	onSaved func()
}

func NewDeploymentService(store DeploymentStore, catalog CatalogReader, log *zap.Logger) *DeploymentService {
	return &DeploymentService{
		store:   store,
		catalog: catalog,
		log:     log,
	}
}

// OnSaved registers a hook run after every successful create or replace.
func (s *DeploymentService) OnSaved(fn func()) {
	s.onSaved = fn
}

func (s *DeploymentService) List(ctx context.Context, synced *bool) ([]models.Deployment, error) {
	qb := repository.NewQueryBuilder()
	if synced != nil {
		qb.AddCondition("synced", *synced)
	}

	return s.store.GetDeployments(ctx, qb)
}

func (s *DeploymentService) Get(ctx context.Context, id string) (*models.Deployment, error) {
	return s.store.GetDeployment(ctx, id)
}

func (s *DeploymentService) Create(ctx context.Context, req DeploymentRequest) (*SaveResult, error) {
	deployment, warnings, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateDeployment(ctx, deployment); err != nil {
		var unique *custom_error.UniqueViolationError
		if errors.As(err, &unique) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDeployment, deployment.ID)
		}
		return nil, err
	}

	s.log.Info("Deployment created",
		zap.String("deployment_id", deployment.ID),
		zap.Int("total_days", deployment.TotalDays),
		zap.Int("items", len(deployment.Items)),
		zap.Int("warnings", len(warnings)),
	)
	s.saved()

	return &SaveResult{Deployment: deployment, Warnings: warnings}, nil
}

// Update replaces the deployment stored under id. The ID itself is immutable.
func (s *DeploymentService) Update(ctx context.Context, id string, req DeploymentRequest) (*SaveResult, error) {
	if req.ID != "" && req.ID != id {
		return nil, &ValidationError{Problems: []string{"deployment id cannot be changed"}}
	}
	req.ID = id

	deployment, warnings, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceDeployment(ctx, deployment); err != nil {
		return nil, err
	}

	s.log.Info("Deployment replaced",
		zap.String("deployment_id", deployment.ID),
		zap.Int("total_days", deployment.TotalDays),
		zap.Int("items", len(deployment.Items)),
	)
	s.saved()

	return &SaveResult{Deployment: deployment, Warnings: warnings}, nil
}

func (s *DeploymentService) prepare(ctx context.Context, req DeploymentRequest) (models.Deployment, []string, error) {
	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return models.Deployment{}, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	warnings, err := req.Validate(catalog)
	if err != nil {
		return models.Deployment{}, nil, err
	}

	deployment := req.ToDeployment()
	deployment.TotalDays = reconcile.TotalDays(deployment.DeploymentDate, deployment.CompletionDate)
	deployment.Synced = false

	return deployment, warnings, nil
}

func (s *DeploymentService) saved() {
	if s.onSaved != nil {
		s.onSaved()
	}
}
