package repository

import (
	"testing"

	"github.com/jchah/connect-four/internal/game"
	"github.com/jchah/connect-four/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a snapshot of a running match
	snap := midGameSnapshot(t)

	// When: Save is called
	err := gameRepo.Save(ctx, snap)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_Load(t *testing.T) {
	t.Run("Load_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a saved snapshot of a finished match
		engine := game.New()
		for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
			_, _, err := engine.DropPiece(col)
			require.NoError(t, err)
		}
		snap := engine.Snapshot()
		snap.MatchID = "88a6cf66-4a34-4b91-a6a4-1f6e55b0a9cd"

		err := gameRepo.Save(ctx, snap)
		require.NoError(t, err)

		// When: Load is called
		loaded, err := gameRepo.Load(ctx)

		// Then: the loaded snapshot matches the saved one, grid included
		require.NoError(t, err)
		require.Equal(t, snap, loaded)
		assert.Equal(t, game.StatusWon, loaded.Status)
		assert.Equal(t, game.Player1, loaded.Winner)
	})

	t.Run("Load_NoSavedGame", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: Load is called on an empty database
		_, err := gameRepo.Load(ctx)

		// Then: an ErrNoSavedGame error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrNoSavedGame, err)
	})

	t.Run("Load_Overwritten", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

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

func TestGameRepository_Clear(t *testing.T) {
	t.Run("Clear_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a saved snapshot
		require.NoError(t, gameRepo.Save(ctx, midGameSnapshot(t)))

		// When: Clear is called
		err := gameRepo.Clear(ctx)

		// Then: the snapshot is gone
		require.NoError(t, err)

		_, err = gameRepo.Load(ctx)
		require.Error(t, err)
		assert.Equal(t, ErrNoSavedGame, err)
	})

	t.Run("Clear_Empty", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: Clear is called with nothing saved
		err := gameRepo.Clear(ctx)

		// Then: clearing an empty database is not an error
		require.NoError(t, err)
	})
}
