package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/warden/pkg/domain"
)

// RunStateStoreContract runs a suite of tests verifying that a StateStore
// implementation adheres to the interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()

	t.Run("Load before first Save", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState("idle")
		state.Append(domain.HistoryEntry{
			From:        "idle",
			To:          "build",
			Timestamp:   time.Now().UTC().Truncate(time.Second),
			Explanation: "contract check",
		})

		require.NoError(t, store.Save(ctx, state))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "build", loaded.CurrentMode)
		require.Len(t, loaded.History, 1)
		assert.Equal(t, "idle", loaded.History[0].From)
		assert.Equal(t, "contract check", loaded.History[0].Explanation)
	})

	t.Run("Load copies are isolated", func(t *testing.T) {
		first, err := store.Load(ctx)
		require.NoError(t, err)
		first.CurrentMode = "mutated"
		first.History[0].Explanation = "mutated"

		second, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "build", second.CurrentMode)
		assert.Equal(t, "contract check", second.History[0].Explanation)
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx, "idle"))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "idle", loaded.CurrentMode)
		assert.Empty(t, loaded.History)
	})
}
