package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jchah/connect-four/internal/game"
	"github.com/redis/go-redis/v9"
)

var ErrNoSavedGame = errors.New("no saved game")

// GameRepository persists the snapshot of the one live match, so a restarted
// process can pick the board up where it was left.
type GameRepository interface {
	Save(ctx context.Context, snap game.Snapshot) error
	Load(ctx context.Context) (game.Snapshot, error)
	Clear(ctx context.Context) error
}

const liveGameKey = "connectfour:live"

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Save(ctx context.Context, snap game.Snapshot) error {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, liveGameKey, snapJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbGame) Load(ctx context.Context) (game.Snapshot, error) {
	response, err := that.client.Get(ctx, liveGameKey).Result()

	if errors.Is(err, redis.Nil) {
		return game.Snapshot{}, ErrNoSavedGame
	}

	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap game.Snapshot
	if err = json.Unmarshal([]byte(response), &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snap, nil
}

func (that *dbGame) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, liveGameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
