package web

import "github.com/jchah/connect-four/internal/game"

// Message is the frame both directions of the socket speak. Data depends on
// Type: clients send "move" with {"col": n} and "reset" with no data, the
// server sends "state" with the board snapshot and "error" with a message.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// StatePayload is what browsers render: the snapshot plus the ready-made
// status line shown under the board.
type StatePayload struct {
	game.Snapshot
	StatusLine string `json:"status_line"`
}

func stateMessage(snap game.Snapshot) Message {
	return Message{
		Type: "state",
		Data: StatePayload{Snapshot: snap, StatusLine: snap.StatusLine()},
	}
}

func errorMessage(err error) Message {
	return Message{
		Type: "error",
		Data: map[string]string{"message": err.Error()},
	}
}
