package game

import (
	"errors"
	"fmt"
)

var ErrBadSnapshot = errors.New("invalid match snapshot")

// Snapshot is the observable state of a match at one point in time. It is
// what front-ends render, what the repository stores and what the websocket
// feed ships to browsers.
type Snapshot struct {
	MatchID   string `json:"match_id,omitempty"`
	Board     Board  `json:"board"`
	Turn      Cell   `json:"turn"`
	Status    Status `json:"status"`
	Winner    Cell   `json:"winner"`
	MovesMade int    `json:"moves_made"`
}

// GameOver reports whether the snapshot describes a concluded match.
func (s Snapshot) GameOver() bool {
	return s.Status != StatusOngoing
}

// IsDraw reports whether the snapshot describes a drawn match.
func (s Snapshot) IsDraw() bool {
	return s.Status == StatusDraw
}

// StatusLine - renders the snapshot as the one-line status every front-end
// shows under the board.
func (s Snapshot) StatusLine() string {
	switch s.Status {
	case StatusWon:
		return fmt.Sprintf("Player %d wins!", s.Winner)
	case StatusDraw:
		return "Draw!"
	default:
		return fmt.Sprintf("Player %d's turn", s.Turn)
	}
}

// Snapshot - returns the current observable state. The board is copied, so
// the caller cannot reach back into the engine.
func (that *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:     that.board,
		Turn:      that.currentPlayer,
		Status:    that.status,
		Winner:    that.winner,
		MovesMade: that.movesMade,
	}
}

// Restore - overwrites the engine state with a previously taken snapshot.
// The per-column bookkeeping is rebuilt from the grid. Snapshots that could
// not have been produced by this engine are rejected wrapped around
// ErrBadSnapshot, and leave the engine untouched.
func (that *Engine) Restore(snap Snapshot) error {
	var next [Cols]int
	moves := 0

	for c := 0; c < Cols; c++ {
		next[c] = Rows - 1
		for r := Rows - 1; r >= 0; r-- {
			cell := snap.Board[r][c]
			if cell != Empty && cell != Player1 && cell != Player2 {
				return fmt.Errorf("%w: unknown cell %d at row %d col %d", ErrBadSnapshot, cell, r, c)
			}
			if cell == Empty {
				continue
			}
			if r < Rows-1 && snap.Board[r+1][c] == Empty {
				return fmt.Errorf("%w: floating disc at row %d col %d", ErrBadSnapshot, r, c)
			}
			next[c] = r - 1
			moves++
		}
	}

	if moves != snap.MovesMade {
		return fmt.Errorf("%w: %d discs on the board but %d moves recorded", ErrBadSnapshot, moves, snap.MovesMade)
	}

	if snap.Turn != Player1 && snap.Turn != Player2 {
		return fmt.Errorf("%w: unknown player %d on turn", ErrBadSnapshot, snap.Turn)
	}

	switch snap.Status {
	case StatusOngoing, StatusDraw:
		if snap.Winner != Empty {
			return fmt.Errorf("%w: winner set on a %s match", ErrBadSnapshot, snap.Status)
		}
	case StatusWon:
		if snap.Winner != Player1 && snap.Winner != Player2 {
			return fmt.Errorf("%w: unknown winner %d", ErrBadSnapshot, snap.Winner)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrBadSnapshot, snap.Status)
	}

	that.board = snap.Board
	that.nextFreeRow = next
	that.currentPlayer = snap.Turn
	that.movesMade = snap.MovesMade
	that.status = snap.Status
	that.winner = snap.Winner

	return nil
}
