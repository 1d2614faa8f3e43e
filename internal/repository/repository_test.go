package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransactionCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(db, "postgres")
	err = repo.Transaction(context.Background(), func(tx *goqu.TxDatabase) error {
		_, err := tx.Update("deployments").Set(goqu.Record{"synced": true}).Executor().Exec()
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := NewRepository(db, "sqlite3")
	err = repo.Transaction(context.Background(), func(tx *goqu.TxDatabase) error {
		return errors.New("validation failed")
	})

	assert.EqualError(t, err, "validation failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := NewRepository(db, "postgres")
	assert.Panics(t, func() {
		_ = repo.Transaction(context.Background(), func(tx *goqu.TxDatabase) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryBuilderAppliesAliases(t *testing.T) {
	qb := NewQueryBuilder()
	assert.False(t, qb.HasConditions())

	qb.AddCondition("synced", false)
	qb.AddCondition("id", "PM-1")

	assert.True(t, qb.HasConditions())
	assert.Equal(t, goqu.Ex{"d.synced": false, "id": "PM-1"}, qb.BuildConditions(map[string]string{"synced": "d.synced"}))
}
