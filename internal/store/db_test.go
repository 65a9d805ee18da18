package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	t.Run("without transaction returns db", func(t *testing.T) {
		assert.Same(t, db, Executor(context.Background(), db))
	})

	t.Run("with transaction returns tx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		tx, err := db.Begin()
		require.NoError(t, err)

		ctx := ContextWithTx(context.Background(), tx)
		got, ok := TxFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, tx, got)
		assert.Same(t, tx, Executor(ctx, db))

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil transaction is ignored", func(t *testing.T) {
		ctx := ContextWithTx(context.Background(), nil)
		_, ok := TxFromContext(ctx)
		assert.False(t, ok)
		assert.Same(t, db, Executor(ctx, db))
	})
}
