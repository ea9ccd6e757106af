package game

import "strings"

const (
	Rows = 6
	Cols = 7

	// Connect is the run length needed to win.
	Connect = 4
)

// Cell is the content of one board position.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
)

func (c Cell) String() string {
	switch c {
	case Player1:
		return "1"
	case Player2:
		return "2"
	default:
		return "."
	}
}

// Board is the 6x7 grid. Row 0 is the top; discs stack from row Rows-1 up.
// It is a value type, so handing it out always hands out a copy.
type Board [Rows][Cols]Cell

// InBounds reports whether (row, col) is a valid board position.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// At - returns the cell at (row, col). Out-of-bounds reads return Empty.
func (b Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

// Full - reports whether every column is topped out.
func (b Board) Full() bool {
	for c := 0; c < Cols; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// String renders the grid for debugging, one row per line, top row first.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b[r][c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
