package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/enform/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.Snapshot{
			"method":         "card",
			"cardRegistered": true,
		}

		err := store.Save(ctx, key, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "card", loaded["method"])
		// JSON round trips may widen booleans/numbers; presence is the contract.
		assert.NotNil(t, loaded["cardRegistered"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, domain.Snapshot{"method": "card"}))
		require.NoError(t, store.Save(ctx, key, domain.Snapshot{"method": "transfer"}))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "transfer", loaded["method"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, domain.Snapshot{"method": "card"}))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Save(ctx, k1, domain.Snapshot{})
		_ = store.Save(ctx, k2, domain.Snapshot{})

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
