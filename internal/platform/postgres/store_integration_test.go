//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAccount(t *testing.T, ctx context.Context, db store.DBTX, username string) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(username, "p1")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresAccountStore(db, nil).Create(ctx, account))
	return account
}

func TestAccountStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		accounts := postgres.NewPostgresAccountStore(tx, nil)
		username := "alice-" + uuid.NewString()
		account := createAccount(t, ctx, tx, username)

		got, err := accounts.GetByUsername(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)

		dup, err := domain.NewAccount(username, "other")
		require.NoError(t, err)
		assert.ErrorIs(t, accounts.Create(ctx, dup), store.ErrUsernameExists)
	})
}

func TestTaskStore_Integration_OwnerScoping(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		owner := createAccount(t, ctx, tx, "owner-"+uuid.NewString())
		other := createAccount(t, ctx, tx, "other-"+uuid.NewString())

		task, err := domain.NewTask(owner.ID, "buy milk", "", domain.DifficultyEasy)
		require.NoError(t, err)

		rows, err := tasks.Upsert(ctx, task)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		_, err = tasks.Get(ctx, task.ID, other.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		hijack := *task
		hijack.OwnerID = other.ID
		hijack.Title = "stolen"
		rows, err = tasks.Upsert(ctx, &hijack)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		got, err := tasks.Get(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", got.Title)

		got.ToggleDone()
		rows, err = tasks.Update(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		require.NoError(t, tasks.Delete(ctx, task.ID))
		assert.ErrorIs(t, tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)

		rows, err = tasks.Update(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

// Concurrent issuance for one account never exceeds the limit. This runs
// outside a test transaction so the row lock is exercised across connections.
func TestAPIKeyStore_Integration_ConcurrentLimit(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	account := createAccount(t, ctx, db, "race-"+uuid.NewString())
	keys := postgres.NewPostgresAPIKeyStore(db, nil)

	const limit = 2
	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := domain.NewAPIKey(account.ID, "tk_"+uuid.NewString())
			if err != nil {
				results <- err
				return
			}
			results <- keys.CreateWithinLimit(ctx, key, limit)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, store.ErrKeyLimitReached)
	}
	assert.Equal(t, limit, succeeded)

	all, err := keys.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Len(t, all, limit)

	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM accounts WHERE id = $1`, account.ID)
	})
}
