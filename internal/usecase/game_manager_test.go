package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jchah/connect-four/internal/apperror"
	"github.com/jchah/connect-four/internal/game"
	"github.com/jchah/connect-four/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*GameManager, repository.GameRepository) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameRepo := repository.NewMemoryGameRepository()

	return NewGameManager(logger, gameRepo, nil), gameRepo
}

func TestGameManager_Drop(t *testing.T) {
	ctx := context.Background()

	t.Run("A successful move is persisted", func(t *testing.T) {
		// Given: a manager with empty storage
		manager, gameRepo := newTestManager()

		// When: a disc is dropped
		snap, err := manager.Drop(ctx, 3)

		// Then: the move took and the same snapshot is in storage
		require.NoError(t, err)
		assert.Equal(t, 1, snap.MovesMade)
		assert.Equal(t, game.Player2, snap.Turn)

		saved, err := gameRepo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, snap, saved)
	})

	t.Run("A rejected move is not persisted", func(t *testing.T) {
		// Given: a manager with empty storage
		manager, gameRepo := newTestManager()

		// When: an out-of-range drop is attempted
		snap, err := manager.Drop(ctx, -1)

		// Then: the error surfaces, the state is untouched and nothing was saved
		require.ErrorIs(t, err, apperror.ErrInvalidColumn)
		assert.Equal(t, 0, snap.MovesMade)

		_, err = gameRepo.Load(ctx)
		assert.Equal(t, repository.ErrNoSavedGame, err)
	})

	t.Run("A full column keeps the previous saved state", func(t *testing.T) {
		// Given: column 2 filled to the top
		manager, gameRepo := newTestManager()
		for i := 0; i < game.Rows; i++ {
			_, err := manager.Drop(ctx, 2)
			require.NoError(t, err)
		}
		before, err := gameRepo.Load(ctx)
		require.NoError(t, err)

		// When: dropping into the full column
		_, err = manager.Drop(ctx, 2)

		// Then: the error surfaces and storage still holds the last good state
		require.ErrorIs(t, err, apperror.ErrColumnFull)

		after, err := gameRepo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("Reset starts a fresh match under a new id", func(t *testing.T) {
		// Given: a match with some moves played
		manager, gameRepo := newTestManager()
		_, err := manager.Drop(ctx, 3)
		require.NoError(t, err)

		before := manager.Snapshot()

		// When: the match is reset
		snap := manager.Reset(ctx)

		// Then: the board is empty again and the match id changed
		assert.Equal(t, 0, snap.MovesMade)
		assert.Equal(t, game.Board{}, snap.Board)
		assert.Equal(t, game.Player1, snap.Turn)
		assert.NotEmpty(t, snap.MatchID)
		assert.NotEqual(t, before.MatchID, snap.MatchID)

		// And: storage now holds the fresh match
		saved, err := gameRepo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, snap, saved)
	})
}

func TestGameManager_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("Resume continues the saved match", func(t *testing.T) {
		// Given: a previous process saved a match three moves in
		first, gameRepo := newTestManager()
		for _, col := range []int{3, 3, 4} {
			_, err := first.Drop(ctx, col)
			require.NoError(t, err)
		}
		saved := first.Snapshot()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		second := NewGameManager(logger, gameRepo, nil)

		// When: a new manager resumes from the same storage
		second.Resume(ctx)

		// Then: the match continues where it was left, id included
		require.Equal(t, saved, second.Snapshot())
	})

	t.Run("Resume with empty storage keeps the fresh match", func(t *testing.T) {
		// Given: a manager with empty storage
		manager, _ := newTestManager()

		// When: resuming
		manager.Resume(ctx)

		// Then: the fresh match is untouched
		snap := manager.Snapshot()
		assert.Equal(t, 0, snap.MovesMade)
		assert.Equal(t, game.StatusOngoing, snap.Status)
	})

	t.Run("Resume drops a corrupt snapshot from storage", func(t *testing.T) {
		// Given: storage holding a snapshot with a floating disc
		gameRepo := repository.NewMemoryGameRepository()

		corrupt := game.Snapshot{Turn: game.Player1, Status: game.StatusOngoing, MovesMade: 1}
		corrupt.Board[2][3] = game.Player1
		require.NoError(t, gameRepo.Save(ctx, corrupt))

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := NewGameManager(logger, gameRepo, nil)

		// When: resuming
		manager.Resume(ctx)

		// Then: the fresh match stays and the bad snapshot is gone
		assert.Equal(t, 0, manager.Snapshot().MovesMade)

		_, err := gameRepo.Load(ctx)
		assert.Equal(t, repository.ErrNoSavedGame, err)
	})
}

func TestGameManager_OnUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Listeners hear successful moves and resets, not failures", func(t *testing.T) {
		// Given: a manager with one registered listener
		manager, _ := newTestManager()

		var seen []game.Snapshot
		manager.OnUpdate(func(snap game.Snapshot) {
			seen = append(seen, snap)
		})

		// When: a good move, a bad move and a reset happen
		_, err := manager.Drop(ctx, 0)
		require.NoError(t, err)

		_, err = manager.Drop(ctx, 99)
		require.Error(t, err)

		manager.Reset(ctx)

		// Then: the listener saw exactly the move and the reset
		require.Len(t, seen, 2)
		assert.Equal(t, 1, seen[0].MovesMade)
		assert.Equal(t, 0, seen[1].MovesMade)
	})
}

func TestGameManager_Snapshot(t *testing.T) {
	t.Run("The match id is stable between moves", func(t *testing.T) {
		ctx := context.Background()
		manager, _ := newTestManager()

		// Given: the id of the fresh match
		id := manager.Snapshot().MatchID
		require.NotEmpty(t, id)

		// When: a move is played
		_, err := manager.Drop(ctx, 4)
		require.NoError(t, err)

		// Then: the id did not change
		assert.Equal(t, id, manager.Snapshot().MatchID)
	})
}
