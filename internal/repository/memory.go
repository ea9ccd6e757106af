package repository

import (
	"context"
	"sync"

	"github.com/jchah/connect-four/internal/game"
)

// memoryGame keeps the live snapshot in process memory. It is the default
// when no redis host is configured; a restart then simply starts fresh.
type memoryGame struct {
	mu   sync.Mutex
	snap *game.Snapshot
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{}
}

func (that *memoryGame) Save(_ context.Context, snap game.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snap = &snap

	return nil
}

func (that *memoryGame) Load(_ context.Context) (game.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.snap == nil {
		return game.Snapshot{}, ErrNoSavedGame
	}

	return *that.snap, nil
}

func (that *memoryGame) Clear(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snap = nil

	return nil
}
