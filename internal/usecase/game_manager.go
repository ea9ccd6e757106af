package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jchah/connect-four/internal/analytics"
	"github.com/jchah/connect-four/internal/game"
	"github.com/jchah/connect-four/internal/repository"
)

type gameRepo interface {
	Save(ctx context.Context, snap game.Snapshot) error
	Load(ctx context.Context) (game.Snapshot, error)
	Clear(ctx context.Context) error
}

// GameManager owns the live match. It serializes access to the engine, keeps
// the saved snapshot up to date and tells everyone interested about state
// changes. Front-ends talk to the manager, never to the engine directly.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	analytics *analytics.Emitter

	mu        sync.Mutex
	engine    *game.Engine
	matchID   string
	listeners []func(game.Snapshot)
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, emitter *analytics.Emitter) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game-manager"),
		gameRepo:  gameRepo,
		analytics: emitter,

		engine:  game.New(),
		matchID: uuid.NewString(),
	}
}

// Resume - loads the saved snapshot, if any, and continues that match. A
// snapshot that fails validation is dropped from storage and the fresh match
// stays in place.
func (that *GameManager) Resume(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snap, err := that.gameRepo.Load(ctx)
	if errors.Is(err, repository.ErrNoSavedGame) {
		that.analytics.Emit("game.start", map[string]any{"match_id": that.matchID})
		return
	}
	if err != nil {
		that.logger.Warn("could not load saved game", "error", err)
		return
	}

	if err = that.engine.Restore(snap); err != nil {
		that.logger.Warn("discarding saved game", "error", err)

		if err = that.gameRepo.Clear(ctx); err != nil {
			that.logger.Warn("could not clear saved game", "error", err)
		}
		return
	}

	if snap.MatchID != "" {
		that.matchID = snap.MatchID
	}

	that.logger.Info("resumed saved game", "match_id", that.matchID, "moves_made", snap.MovesMade)
}

// Snapshot - returns the current state of the live match.
func (that *GameManager) Snapshot() game.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Drop - plays the current player's disc into the given column. On success
// the new state is persisted and every listener is notified; on failure the
// unchanged state comes back along with the error.
func (that *GameManager) Drop(ctx context.Context, col int) (game.Snapshot, error) {
	that.mu.Lock()

	row, col, err := that.engine.DropPiece(col)
	if err != nil {
		snap := that.snapshotLocked()
		that.mu.Unlock()
		return snap, err
	}

	snap := that.snapshotLocked()
	that.persistLocked(ctx, snap)

	that.analytics.Emit("game.move", map[string]any{
		"match_id": that.matchID,
		"col":      col,
		"row":      row,
		"player":   snap.Board.At(row, col),
	})
	if snap.GameOver() {
		that.analytics.Emit("game.end", map[string]any{
			"match_id":   that.matchID,
			"status":     snap.Status,
			"winner":     snap.Winner,
			"moves_made": snap.MovesMade,
		})
	}

	listeners := that.listeners
	that.mu.Unlock()

	for _, notify := range listeners {
		notify(snap)
	}

	return snap, nil
}

// Reset - abandons the live match and starts a fresh one under a new id.
func (that *GameManager) Reset(ctx context.Context) game.Snapshot {
	that.mu.Lock()

	that.engine.Reset()
	that.matchID = uuid.NewString()

	snap := that.snapshotLocked()
	that.persistLocked(ctx, snap)

	that.analytics.Emit("game.start", map[string]any{"match_id": that.matchID})

	listeners := that.listeners
	that.mu.Unlock()

	for _, notify := range listeners {
		notify(snap)
	}

	return snap
}

// OnUpdate - registers a listener called with the new snapshot after every
// successful move and every reset. Listeners must not call back into the
// manager from the same goroutine chain.
func (that *GameManager) OnUpdate(fn func(game.Snapshot)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listeners = append(that.listeners, fn)
}

func (that *GameManager) snapshotLocked() game.Snapshot {
	snap := that.engine.Snapshot()
	snap.MatchID = that.matchID

	return snap
}

// persistLocked writes the snapshot through to storage. Storage trouble is
// logged and swallowed: a broken redis must not stop the match.
func (that *GameManager) persistLocked(ctx context.Context, snap game.Snapshot) {
	if err := that.gameRepo.Save(ctx, snap); err != nil {
		that.logger.Warn("could not save game", "error", err)
	}
}
