package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jchah/connect-four/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midGameSnapshot builds a snapshot of a match a few moves in.
func midGameSnapshot(t *testing.T) game.Snapshot {
	t.Helper()

	engine := game.New()
	for _, col := range []int{3, 3, 4} {
		_, _, err := engine.DropPiece(col)
		require.NoError(t, err)
	}

	snap := engine.Snapshot()
	snap.MatchID = uuid.NewString()

	return snap
}

func TestMemoryGameRepository_Load(t *testing.T) {
	t.Run("Load_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewMemoryGameRepository()

		// Given: a saved snapshot
		snap := midGameSnapshot(t)
		require.NoError(t, gameRepo.Save(ctx, snap))

		// When: Load is called
		loaded, err := gameRepo.Load(ctx)

		// Then: the loaded snapshot matches the saved one
		require.NoError(t, err)
		require.Equal(t, snap, loaded)
	})

	t.Run("Load_NoSavedGame", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewMemoryGameRepository()

		// When: Load is called before anything was saved
		_, err := gameRepo.Load(ctx)

		// Then: an ErrNoSavedGame error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrNoSavedGame, err)
	})
}

func TestMemoryGameRepository_Save(t *testing.T) {
	t.Run("Save_Overwrites", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewMemoryGameRepository()

		// Given: two snapshots saved in a row
		first := midGameSnapshot(t)
		require.NoError(t, gameRepo.Save(ctx, first))

		second := midGameSnapshot(t)
		require.NoError(t, gameRepo.Save(ctx, second))

		// When: Load is called
		loaded, err := gameRepo.Load(ctx)

		// Then: only the latest snapshot is kept
		require.NoError(t, err)
		require.Equal(t, second, loaded)
	})
}

func TestMemoryGameRepository_Clear(t *testing.T) {
	t.Run("Clear_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewMemoryGameRepository()

		// Given: a saved snapshot
		require.NoError(t, gameRepo.Save(ctx, midGameSnapshot(t)))

		// When: Clear is called
		err := gameRepo.Clear(ctx)

		// Then: the snapshot is gone
		require.NoError(t, err)
		_, err = gameRepo.Load(ctx)
		assert.Equal(t, ErrNoSavedGame, err)
	})

	t.Run("Clear_Empty", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewMemoryGameRepository()

		// When: Clear is called with nothing saved
		err := gameRepo.Clear(ctx)

		// Then: clearing an empty store is not an error
		require.NoError(t, err)
	})
}
