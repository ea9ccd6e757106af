package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jchah/connect-four/internal/analytics"
	"github.com/jchah/connect-four/internal/config"
	"github.com/jchah/connect-four/internal/repository"
	"github.com/jchah/connect-four/internal/repository/storage"
	"github.com/jchah/connect-four/internal/ui/gui"
	"github.com/jchah/connect-four/internal/ui/terminal"
	"github.com/jchah/connect-four/internal/ui/web"
	"github.com/jchah/connect-four/internal/usecase"
)

var ErrUnknownUI = errors.New("unknown ui mode")

// RunApp - runs the application: one process, one live match, one front-end.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, cleanup, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer cleanup()

	var emitter *analytics.Emitter
	if conf.Kafka.Enabled() {
		log.Info("analytics enabled", "brokers", conf.Kafka.Brokers, "topic", conf.Kafka.Topic)
		emitter = analytics.New(logger, conf.Kafka.Brokers, conf.Kafka.Topic)

		defer func() {
			if closeErr := emitter.Close(); closeErr != nil {
				log.Error("could not close analytics emitter", "error", closeErr)
			}
		}()
	}

	manager := usecase.NewGameManager(logger, gameRepo, emitter)
	manager.Resume(ctx)

	// The front-end owns the calling goroutine until shutdown. The gui one
	// must: its event loop has to run on the main thread.
	switch conf.UI {
	case config.UIGUI:
		log.Info("starting gui", "cell_size", conf.GUI.CellSize)
		return gui.Run(ctx, logger, manager, conf.GUI.CellSize)
	case config.UITerminal:
		log.Info("starting terminal ui")
		return terminal.Run(ctx, logger, manager)
	case config.UIWeb:
		log.Info("starting web ui", "port", conf.Web.Port)
		return web.New(logger, manager).Start(ctx, conf.Web.Port)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUI, conf.UI)
	}
}

// newGameRepository picks where the live match snapshot lives. With no redis
// configured the match survives resets but not restarts.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled() {
		log.Info("no redis configured, match state is in memory only")
		return repository.NewMemoryGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	cleanup := func() {
		if closeErr := redisStorage.Connection.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}

	return repository.NewGameRepository(redisStorage.Connection), cleanup, nil
}
