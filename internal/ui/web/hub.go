package web

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn guards a websocket connection with a write lock, since broadcasts
// and per-client replies come from different goroutines.
type wsConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (that *wsConn) safeWriteJSON(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.WriteJSON(v)
}

// hub tracks the connected browsers. Every viewer of the hot-seat match gets
// the same state broadcast.
type hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[*wsConn]struct{}
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger: logger,
		conns:  make(map[*wsConn]struct{}),
	}
}

func (that *hub) add(conn *wsConn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conns[conn] = struct{}{}
}

func (that *hub) remove(conn *wsConn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, conn)
}

// broadcast sends the message to every client. Clients that fail to take the
// write are dropped.
func (that *hub) broadcast(msg Message) {
	that.mu.Lock()
	conns := make([]*wsConn, 0, len(that.conns))
	for conn := range that.conns {
		conns = append(conns, conn)
	}
	that.mu.Unlock()

	for _, conn := range conns {
		if err := conn.safeWriteJSON(msg); err != nil {
			that.logger.Warn("dropping websocket client", "error", err)
			that.remove(conn)
			_ = conn.Close()
		}
	}
}
