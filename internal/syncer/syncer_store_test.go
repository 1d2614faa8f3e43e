package syncer

import (
	"context"
	"testing"
	"time"

	"signyard/internal/database"
	"signyard/internal/database/migration"
	"signyard/internal/inventory/deployments"
	"signyard/internal/repository"
	"signyard/internal/vault"
	"signyard/migrations"
	"signyard/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// editingPublisher replaces the deployment while its first publish is in
// flight, the way an operator PUT can land during a sync pass.
type editingPublisher struct {
	store     *deployments.DeploymentRepository
	published []models.Deployment
}

func (p *editingPublisher) Publish(ctx context.Context, deployment models.Deployment) error {
	p.published = append(p.published, deployment)
	if len(p.published) > 1 {
		return nil
	}

	edited := deployment
	edited.Event = "Winter Parade (rerouted)"
	edited.Synced = false
	return p.store.ReplaceDeployment(ctx, edited)
}

func (p *editingPublisher) Name() string { return "editing" }

func newSQLiteDeploymentStore(t *testing.T) *deployments.DeploymentRepository {
	t.Helper()
	log := zap.NewNop()

	db, target, err := database.NewConnection("sqlite://" + t.TempDir() + "/sync.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.MigrateFS(target.MigrateURL, migrations.FS, migrations.Dir(target.Dialect), false, log))

	key, err := vault.GenerateKey()
	require.NoError(t, err)
	sealer, err := vault.NewFromHex(key)
	require.NoError(t, err)

	return deployments.NewRepository(repository.NewRepository(db, target.Dialect), sealer)
}

func TestEditDuringPublishIsSyncedOnNextPass(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteDeploymentStore(t)
	require.NoError(t, store.CreateDeployment(ctx, models.Deployment{
		ID:             "PM-2001",
		ChargeOut:      "Client E",
		Event:          "Winter Parade",
		DeploymentDate: "2024-12-01",
		CompletionDate: "2024-12-03",
		TotalDays:      3,
		Items:          []models.DeployedItem{{Item: "Barricades", Yard: "Northwest Yard", Quantity: 40}},
	}))

	publisher := &editingPublisher{store: store}
	syncer := New(store, publisher, time.Hour, zap.NewNop())

	report, err := syncer.SyncNow(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Synced)
	assert.Equal(t, []string{"PM-2001"}, report.Changed)

	stored, err := store.GetDeployment(ctx, "PM-2001")
	require.NoError(t, err)
	assert.False(t, stored.Synced, "the edit has not been published yet")
	assert.Equal(t, 2, stored.Version)

	report, err = syncer.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"PM-2001"}, report.Synced)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, "Winter Parade (rerouted)", publisher.published[1].Event)

	stored, err = store.GetDeployment(ctx, "PM-2001")
	require.NoError(t, err)
	assert.True(t, stored.Synced)

	pending, err := store.CountUnsynced(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}
