package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jchah/connect-four/internal/game"
)

//go:embed index.html
var indexHTML []byte

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type gameManager interface {
	Snapshot() game.Snapshot
	Drop(ctx context.Context, col int) (game.Snapshot, error)
	Reset(ctx context.Context) game.Snapshot
	OnUpdate(fn func(game.Snapshot))
}

// Server drives the browser front-end: it serves the board page and keeps
// every open socket fed with the latest state.
type Server struct {
	logger  *slog.Logger
	manager gameManager
	hub     *hub
}

func New(logger *slog.Logger, manager gameManager) *Server {
	log := logger.With("component", "web")

	server := &Server{
		logger:  log,
		manager: manager,
		hub:     newHub(log),
	}

	manager.OnUpdate(func(snap game.Snapshot) {
		server.hub.broadcast(stateMessage(snap))
	})

	return server
}

// Handler - returns the routes the server answers on.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", that.handleIndex)
	mux.HandleFunc("/ws", that.handleWS)
	mux.HandleFunc("/ping", that.handlePing)

	return mux
}

// Start - serves the game until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("could not shut down web server", "error", err)
		}
	}()

	that.logger.Info("serving game", "addr", "http://localhost:"+port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		that.logger.Warn("could not write index page", "error", err)
	}
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Warn("could not upgrade connection", "error", err)
		return
	}

	client := &wsConn{Conn: conn}
	that.hub.add(client)

	// the joining browser gets the board as it stands
	if err = client.safeWriteJSON(stateMessage(that.manager.Snapshot())); err != nil {
		that.hub.remove(client)
		_ = client.Close()
		return
	}

	that.readLoop(client)
}

func (that *Server) readLoop(client *wsConn) {
	defer func() {
		that.hub.remove(client)
		_ = client.Close()
	}()

	for {
		var incoming Message
		if err := client.ReadJSON(&incoming); err != nil {
			return
		}

		that.handleMessage(client, incoming)
	}
}

func (that *Server) handleMessage(client *wsConn, msg Message) {
	ctx := context.Background()

	switch msg.Type {
	case "move":
		col := -1
		if data, ok := msg.Data.(map[string]any); ok {
			if f, ok := data["col"].(float64); ok {
				col = int(f)
			}
		}

		if _, err := that.manager.Drop(ctx, col); err != nil {
			_ = client.safeWriteJSON(errorMessage(err))
		}
	case "reset":
		that.manager.Reset(ctx)
	default:
		that.logger.Warn("unknown message type", "type", msg.Type)
	}
}
