package catalog

import (
	"context"
	"testing"

	"signyard/internal/repository"
	"signyard/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(repository.NewRepository(db, "postgres")), mock
}

func TestGetCatalog(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"category", "item", "cost_per_day", "yard", "initial_stock"}).
		AddRow("Miscellaneous Items", "Temp Stands", "1.95", "Cromdale Yard", 250).
		AddRow("Miscellaneous Items", "Temp Stands", "1.95", "Gretzky Yard", 250).
		AddRow("Delineator Device", "Pexco", "1.00", nil, nil)
	mock.ExpectQuery(`SELECT .* FROM "catalog_items" AS "ci" LEFT JOIN "catalog_stock" AS "cs"`).WillReturnRows(rows)

	items, err := repo.GetCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]int{"Cromdale Yard": 250, "Gretzky Yard": 250}, items[0].InitialStock)
	assert.Equal(t, "Pexco", items[1].Item)
	assert.Empty(t, items[1].InitialStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountItems(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "catalog_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(27))

	count, err := repo.CountItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 27, count)
}

func TestReplaceCatalog(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "catalog_stock"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "catalog_items"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "catalog_items"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "catalog_stock"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceCatalog(context.Background(), []models.InventoryItem{
		{Category: "Barricade", Item: "Barricades", CostPerDay: decimal.RequireFromString("1.78"), InitialStock: map[string]int{"Northwest Yard": 500}},
		{Category: "Delineator Device", Item: "Pexco", CostPerDay: decimal.NewFromInt(1), InitialStock: map[string]int{}},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCatalogRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "catalog_stock"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "catalog_items"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "catalog_items"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceCatalog(context.Background(), []models.InventoryItem{
		{Category: "Barricade", Item: "Barricades", CostPerDay: decimal.NewFromInt(1)},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCatalogRejectsSubCentCost(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.ReplaceCatalog(context.Background(), []models.InventoryItem{
		{Category: "Delineator Device", Item: "Knock Down Markers", CostPerDay: decimal.RequireFromString("0.125")},
	})

	assert.ErrorContains(t, err, "more than 2 decimals")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCatalogAcceptsTrailingZeros(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "catalog_stock"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "catalog_items"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "catalog_items" .*'1.50'`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceCatalog(context.Background(), []models.InventoryItem{
		{Category: "Barricade", Item: "Barricades", CostPerDay: decimal.RequireFromString("1.5000")},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
