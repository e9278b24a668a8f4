package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(id string) bool) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	exists := func(id string) bool {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&n))
		return n > 0
	}
	return db.NewSQLiteUnitOfWork(database), exists
}

func insertRun(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO runs (id, created_at) VALUES (?, '2025-01-01T00:00:00Z')`, id)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, exists := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertRun(ctx, tx, "r1")
	})
	require.NoError(t, err)
	assert.True(t, exists("r1"), "run should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, exists := newUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRun(ctx, tx, "r2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, exists("r2"), "run should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, exists := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertRun(ctx, tx, "r3")
			panic("boom")
		})
	})
	assert.False(t, exists("r3"), "run should not exist after panic rollback")
}

func TestWithinTx_CancelledContext(t *testing.T) {
	uow, _ := newUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
