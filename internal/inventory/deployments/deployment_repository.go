package deployments

import (
	"context"
	"fmt"

	"signyard/internal/repository"
	custom_error "signyard/pkg/errors"
	"signyard/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Sealer protects the columns that identify clients and places.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type DeploymentRepository struct {
	repository *repository.Repository
	sealer     Sealer
}

func NewRepository(r *repository.Repository, s Sealer) *DeploymentRepository {
	return &DeploymentRepository{
		repository: r,
		sealer:     s,
	}
}

func (r *DeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	qb := repository.NewQueryBuilder()
	qb.AddCondition("id", id)

	deployments, err := r.GetDeployments(ctx, qb)
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return nil, ErrDeploymentNotFound
	}

	return &deployments[0], nil
}

// GetDeployments returns deployments ordered by deployment date then ID.
// A nil builder selects everything.
func (r *DeploymentRepository) GetDeployments(ctx context.Context, conditions repository.QueryBuilder) ([]models.Deployment, error) {
	query := r.repository.GoquDBWrapper.
		From("deployments").
		Order(goqu.I("deployment_date").Asc(), goqu.I("id").Asc())

	if conditions != nil && conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(map[string]string{}))
	}

	var records []models.FlatDeploymentRecord
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to select deployments from database: %w", err)
	}

	deployments := make([]models.Deployment, 0, len(records))
	if len(records) == 0 {
		return deployments, nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	var lines []models.FlatDeployedItemRecord
	err := r.repository.GoquDBWrapper.
		From("deployment_items").
		Where(goqu.Ex{"deployment_id": ids}).
		Order(goqu.I("deployment_id").Asc(), goqu.I("position").Asc()).
		Executor().
		ScanStructsContext(ctx, &lines)
	if err != nil {
		return nil, fmt.Errorf("unable to select deployment items from database: %w", err)
	}

	linesByDeployment := make(map[string][]models.DeployedItem, len(records))
	for _, line := range lines {
		linesByDeployment[line.DeploymentID] = append(linesByDeployment[line.DeploymentID], models.DeployedItem{
			Item:     line.Item,
			Yard:     line.Yard,
			Quantity: line.Quantity,
		})
	}

	for _, record := range records {
		deployment, err := r.transformToDeployment(record, linesByDeployment[record.ID])
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, deployment)
	}

	return deployments, nil
}

func (r *DeploymentRepository) CreateDeployment(ctx context.Context, deployment models.Deployment) error {
	record, err := r.toRecord(deployment)
	if err != nil {
		return err
	}

	return r.repository.Transaction(ctx, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Insert("deployments").Rows(record).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert deployment %s: %w", deployment.ID, custom_error.Classify(err))
		}

		return insertLines(ctx, tx, deployment)
	})
}

// ReplaceDeployment overwrites an existing deployment and all of its lines.
func (r *DeploymentRepository) ReplaceDeployment(ctx context.Context, deployment models.Deployment) error {
	record, err := r.toRecord(deployment)
	if err != nil {
		return err
	}
	delete(record, "id")
	record["updated_at"] = goqu.L("CURRENT_TIMESTAMP")
	record["version"] = goqu.L(`"version" + 1`)

	return r.repository.Transaction(ctx, func(tx *goqu.TxDatabase) error {
		result, err := tx.Update("deployments").
			Set(record).
			Where(goqu.Ex{"id": deployment.ID}).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to update deployment %s: %w", deployment.ID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrDeploymentNotFound
		}

		if _, err := tx.Delete("deployment_items").Where(goqu.Ex{"deployment_id": deployment.ID}).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear items of deployment %s: %w", deployment.ID, err)
		}

		return insertLines(ctx, tx, deployment)
	})
}

// MarkSynced flags the deployment as synced only if it still has the given
// version. It reports false when the deployment was replaced in between.
func (r *DeploymentRepository) MarkSynced(ctx context.Context, id string, version int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Update("deployments").
		Set(goqu.Record{"synced": true}).
		Where(goqu.Ex{"id": id, "version": version}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark deployment %s as synced: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *DeploymentRepository) CountUnsynced(ctx context.Context) (int, error) {
	var count int
	_, err := r.repository.GoquDBWrapper.
		Select(goqu.COUNT(goqu.Star())).
		From("deployments").
		Where(goqu.Ex{"synced": false}).
		Executor().
		ScanValContext(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsynced deployments: %w", err)
	}

	return count, nil
}

func insertLines(ctx context.Context, tx *goqu.TxDatabase, deployment models.Deployment) error {
	if len(deployment.Items) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(deployment.Items))
	for position, line := range deployment.Items {
		rows = append(rows, goqu.Record{
			"deployment_id": deployment.ID,
			"position":      position,
			"item":          line.Item,
			"yard":          line.Yard,
			"quantity":      line.Quantity,
		})
	}

	if _, err := tx.Insert("deployment_items").Rows(rows...).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert items of deployment %s: %w", deployment.ID, err)
	}

	return nil
}

func (r *DeploymentRepository) toRecord(deployment models.Deployment) (goqu.Record, error) {
	chargeOut, err := r.sealer.Seal(deployment.ChargeOut)
	if err != nil {
		return nil, fmt.Errorf("failed to seal charge out: %w", err)
	}

	record := goqu.Record{
		"id":              deployment.ID,
		"charge_out":      chargeOut,
		"event":           deployment.Event,
		"deployment_date": deployment.DeploymentDate,
		"completion_date": deployment.CompletionDate,
		"drop_off_date":   nullable(deployment.DropOffDate),
		"pick_up_date":    nullable(deployment.PickUpDate),
		"total_days":      deployment.TotalDays,
		"street":          nil,
		"avenue":          nil,
		"synced":          deployment.Synced,
	}

	if deployment.Location != nil {
		street, err := r.sealer.Seal(deployment.Location.Street)
		if err != nil {
			return nil, fmt.Errorf("failed to seal street: %w", err)
		}
		avenue, err := r.sealer.Seal(deployment.Location.Avenue)
		if err != nil {
			return nil, fmt.Errorf("failed to seal avenue: %w", err)
		}
		record["street"] = street
		record["avenue"] = avenue
	}

	return record, nil
}

func (r *DeploymentRepository) transformToDeployment(record models.FlatDeploymentRecord, lines []models.DeployedItem) (models.Deployment, error) {
	chargeOut, err := r.sealer.Open(record.ChargeOut)
	if err != nil {
		return models.Deployment{}, fmt.Errorf("failed to open charge out of deployment %s: %w", record.ID, err)
	}

	deployment := models.Deployment{
		ID:             record.ID,
		ChargeOut:      chargeOut,
		Event:          record.Event,
		DeploymentDate: record.DeploymentDate,
		CompletionDate: record.CompletionDate,
		TotalDays:      record.TotalDays,
		Items:          lines,
		Synced:         record.Synced,
		Version:        record.Version,
	}
	if deployment.Items == nil {
		deployment.Items = []models.DeployedItem{}
	}
	if record.DropOffDate != nil {
		deployment.DropOffDate = *record.DropOffDate
	}
	if record.PickUpDate != nil {
		deployment.PickUpDate = *record.PickUpDate
	}

	if record.Street != nil && record.Avenue != nil {
		street, err := r.sealer.Open(*record.Street)
		if err != nil {
			return models.Deployment{}, fmt.Errorf("failed to open street of deployment %s: %w", record.ID, err)
		}
		avenue, err := r.sealer.Open(*record.Avenue)
		if err != nil {
			return models.Deployment{}, fmt.Errorf("failed to open avenue of deployment %s: %w", record.ID, err)
		}
		deployment.Location = &models.Location{Street: street, Avenue: avenue}
	}

	return deployment, nil
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
