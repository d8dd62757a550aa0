package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicio-usuarios/internal/pkg/database"
	"servicio-usuarios/internal/pkg/database/dbtest"
)

func newManager(t *testing.T) (*database.TxManager, *dbtest.Recorder) {
	t.Helper()
	rec := &dbtest.Recorder{}
	db := dbtest.Open(rec)
	t.Cleanup(func() { db.Close() })
	return database.NewTxManager(db), rec
}

func TestWithinTransaction_AfterCommitRunsAfterCommit(t *testing.T) {
	tm, rec := newManager(t)

	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		assert.True(t, database.InTransaction(ctx))
		_, err := database.Executor(ctx, tm.DB).ExecContext(ctx, "UPDATE x")
		require.NoError(t, err)
		database.AfterCommit(ctx, func() { rec.Add("hook") })
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "exec", "commit", "hook"}, rec.Events())
}

func TestWithinTransaction_AfterCommitSkippedOnRollback(t *testing.T) {
	tm, rec := newManager(t)
	falha := errors.New("falha")

	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		database.AfterCommit(ctx, func() { rec.Add("hook") })
		return falha
	})

	assert.ErrorIs(t, err, falha)
	assert.Equal(t, []string{"begin", "rollback"}, rec.Events())
}

func TestWithinTransaction_PanicRollsBack(t *testing.T) {
	tm, rec := newManager(t)

	assert.Panics(t, func() {
		_ = tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
			database.AfterCommit(ctx, func() { rec.Add("hook") })
			panic("boom")
		})
	})
	assert.Equal(t, []string{"begin", "rollback"}, rec.Events())
}

func TestWithinTransaction_NestedJoinsOuter(t *testing.T) {
	tm, rec := newManager(t)

	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithinTransaction(ctx, func(ctx context.Context) error {
			database.AfterCommit(ctx, func() { rec.Add("hook") })
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "commit", "hook"}, rec.Events())
}

func TestAfterCommit_OutsideTransactionRunsNow(t *testing.T) {
	ran := false
	database.AfterCommit(context.Background(), func() { ran = true })

	assert.True(t, ran)
	assert.False(t, database.InTransaction(context.Background()))
}
