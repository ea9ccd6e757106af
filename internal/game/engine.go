package game

import (
	"fmt"

	"github.com/jchah/connect-four/internal/apperror"
)

// Status tells whether a match is still being played and, once it is not,
// how it ended.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
)

// directions are the four win axes: horizontal, vertical and both diagonals.
// Each is walked forward and backward from the placed disc.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Engine is the sole authority over the rules of a single match. It owns the
// board, enforces turn order and detects wins and draws. All operations are
// synchronous and lock-free; callers that share an Engine across goroutines
// must serialize access themselves.
type Engine struct {
	board         Board
	nextFreeRow   [Cols]int
	currentPlayer Cell
	movesMade     int
	status        Status
	winner        Cell
}

// New returns an engine holding a fresh match.
func New() *Engine {
	that := &Engine{}
	that.Reset()
	return that
}

// Reset - starts a fresh match: empty board, every column open at the bottom
// row, Player1 to move. Safe to call at any point, any number of times.
func (that *Engine) Reset() {
	that.board = Board{}
	for c := 0; c < Cols; c++ {
		that.nextFreeRow[c] = Rows - 1
	}
	that.currentPlayer = Player1
	that.movesMade = 0
	that.status = StatusOngoing
	that.winner = Empty
}

// DropPiece - drops a disc for the current player into col and returns the
// (row, col) where it landed.
//
// It fails with apperror.ErrGameFinished once the match is over, with
// apperror.ErrInvalidColumn for columns outside [0, Cols) and with
// apperror.ErrColumnFull when the column is topped out. On failure the
// match state is left untouched.
func (that *Engine) DropPiece(col int) (int, int, error) {
	if that.status != StatusOngoing {
		return -1, -1, apperror.ErrGameFinished
	}

	if col < 0 || col >= Cols {
		return -1, -1, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, col)
	}

	row := that.nextFreeRow[col]
	if row < 0 {
		return -1, -1, fmt.Errorf("%w: %d", apperror.ErrColumnFull, col)
	}

	that.board[row][col] = that.currentPlayer
	that.nextFreeRow[col]--
	that.movesMade++

	switch {
	case that.isWinningMove(row, col):
		that.status = StatusWon
		that.winner = that.currentPlayer
	case that.movesMade == Rows*Cols:
		that.status = StatusDraw
	default:
		that.currentPlayer = toggle(that.currentPlayer)
	}

	return row, col, nil
}

// isWinningMove reports whether the disc just placed at (row, col) completed
// a run of Connect or more. Only lines through the placed cell are walked,
// so the check is constant-time in the board size.
func (that *Engine) isWinningMove(row, col int) bool {
	piece := that.board[row][col]
	for _, d := range directions {
		if that.countRun(row, col, d[0], d[1], piece) >= Connect {
			return true
		}
	}
	return false
}

// countRun counts contiguous piece discs through (row, col) along (dr, dc),
// walking both ways. The placed disc itself counts, so the result is >= 1.
func (that *Engine) countRun(row, col, dr, dc int, piece Cell) int {
	count := 1

	for r, c := row+dr, col+dc; InBounds(r, c) && that.board[r][c] == piece; r, c = r+dr, c+dc {
		count++
	}
	for r, c := row-dr, col-dc; InBounds(r, c) && that.board[r][c] == piece; r, c = r-dr, c-dc {
		count++
	}

	return count
}

func toggle(player Cell) Cell {
	if player == Player1 {
		return Player2
	}
	return Player1
}

// Board - returns a copy of the grid.
func (that *Engine) Board() Board {
	return that.board
}

// CurrentPlayer - returns whose turn it is. A terminal move does not toggle
// the turn, so after the match concludes this keeps pointing at the player
// who made the final move.
func (that *Engine) CurrentPlayer() Cell {
	return that.currentPlayer
}

// MovesMade - returns the number of discs placed so far.
func (that *Engine) MovesMade() int {
	return that.movesMade
}

// Status - returns the match status.
func (that *Engine) Status() Status {
	return that.status
}

// GameOver reports whether the match has concluded.
func (that *Engine) GameOver() bool {
	return that.status != StatusOngoing
}

// Winner - returns the winning player, or Empty while the match is ongoing
// or ended in a draw.
func (that *Engine) Winner() Cell {
	return that.winner
}

// IsDraw reports whether the match ended with a full board and no winner.
func (that *Engine) IsDraw() bool {
	return that.status == StatusDraw
}
