package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/jchah/connect-four/internal/game"
)

var (
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Dim(true)
	styleBoard   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePlayer1 = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlayer2 = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

const (
	boardLeft = 2
	boardTop  = 5
)

type gameManager interface {
	Snapshot() game.Snapshot
	Drop(ctx context.Context, col int) (game.Snapshot, error)
	Reset(ctx context.Context) game.Snapshot
}

// App is the terminal front-end. Arrows pick a column, enter drops the
// current player's disc, digits drop straight into a column.
type App struct {
	logger  *slog.Logger
	manager gameManager
	screen  tcell.Screen
	cursor  int
}

// Run - takes over the terminal and blocks until the player quits or the
// context ends.
func Run(ctx context.Context, logger *slog.Logger, manager gameManager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	// wake the event loop up when the process is told to stop
	go func() {
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	app := &App{
		logger:  logger.With("component", "terminal"),
		manager: manager,
		screen:  screen,
		cursor:  game.Cols / 2,
	}

	return app.loop(ctx)
}

func (that *App) loop(ctx context.Context) error {
	for {
		that.draw()

		event := that.screen.PollEvent()
		if event == nil {
			return nil
		}

		switch ev := event.(type) {
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			if quit := that.handleKey(ctx, ev); quit {
				return nil
			}
		}
	}
}

// handleKey reacts to one key press and reports whether the player quit.
// Drops the board cannot take fall through without any effect.
func (that *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		that.cursor = moveCursor(that.cursor, -1)
		return false
	case tcell.KeyRight:
		that.cursor = moveCursor(that.cursor, +1)
		return false
	case tcell.KeyEnter:
		that.drop(ctx, that.cursor)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return true
	case r == 'h':
		that.cursor = moveCursor(that.cursor, -1)
	case r == 'l':
		that.cursor = moveCursor(that.cursor, +1)
	case r == ' ':
		that.drop(ctx, that.cursor)
	case r == 'n':
		that.manager.Reset(ctx)
	default:
		if col, ok := digitColumn(r); ok {
			that.drop(ctx, col)
		}
	}

	return false
}

func (that *App) drop(ctx context.Context, col int) {
	if _, err := that.manager.Drop(ctx, col); err != nil {
		that.logger.Debug("ignored drop", "col", col, "error", err)
	}
}

func (that *App) draw() {
	snap := that.manager.Snapshot()

	that.screen.Clear()

	drawText(that.screen, boardLeft, 1, "Connect Four", styleText.Bold(true))

	// cursor marker above the selected column
	drawText(that.screen, boardLeft+that.cursor*2, 3, "v", styleText)

	for c := 0; c < game.Cols; c++ {
		drawText(that.screen, boardLeft+c*2, 4, fmt.Sprintf("%d", c+1), styleDim)
	}

	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			symbol, style := discRune(snap.Board.At(r, c))
			that.screen.SetContent(boardLeft+c*2, boardTop+r, symbol, nil, style)
		}
	}

	drawText(that.screen, boardLeft, boardTop+game.Rows+1, snap.StatusLine(), styleText)
	drawText(that.screen, boardLeft, boardTop+game.Rows+3, "arrows/hl move  enter/space drop  1-7 drop  n new game  q quit", styleDim)

	that.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// moveCursor shifts the column cursor, clamped to the board.
func moveCursor(cursor, delta int) int {
	next := cursor + delta
	if next < 0 {
		return 0
	}
	if next >= game.Cols {
		return game.Cols - 1
	}
	return next
}

// digitColumn maps the keys 1..7 to their board column.
func digitColumn(r rune) (int, bool) {
	if r < '1' || r > '0'+game.Cols {
		return 0, false
	}
	return int(r - '1'), true
}

func discRune(cell game.Cell) (rune, tcell.Style) {
	switch cell {
	case game.Player1:
		return '●', stylePlayer1
	case game.Player2:
		return '●', stylePlayer2
	default:
		return '·', styleBoard
	}
}
