package gui

import (
	"context"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jchah/connect-four/internal/game"
)

const headerHeight = 60

var (
	colorBackground = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	colorBoard      = color.RGBA{R: 0x0a, G: 0x4e, B: 0xa1, A: 0xff}
	colorPlayer1    = color.RGBA{R: 0xf5, G: 0xd2, B: 0x0c, A: 0xff}
	colorPlayer2    = color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}
	colorEmpty      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type gameManager interface {
	Snapshot() game.Snapshot
	Drop(ctx context.Context, col int) (game.Snapshot, error)
	Reset(ctx context.Context) game.Snapshot
}

// App is the desktop front-end. Both players share the one mouse: a click on
// a column drops the current player's disc there.
type App struct {
	ctx      context.Context
	logger   *slog.Logger
	manager  gameManager
	cellSize int
}

func NewApp(ctx context.Context, logger *slog.Logger, manager gameManager, cellSize int) *App {
	return &App{
		ctx:      ctx,
		logger:   logger.With("component", "gui"),
		manager:  manager,
		cellSize: cellSize,
	}
}

// Run - opens the window and blocks until it closes or the context ends.
func Run(ctx context.Context, logger *slog.Logger, manager gameManager, cellSize int) error {
	app := NewApp(ctx, logger, manager, cellSize)

	ebiten.SetWindowSize(app.width(), app.height())
	ebiten.SetWindowTitle("Connect Four")

	return ebiten.RunGame(app)
}

func (that *App) width() int  { return game.Cols * that.cellSize }
func (that *App) height() int { return headerHeight + game.Rows*that.cellSize }

// Update - handles input. Clicks the board cannot take, full columns
// included, fall through without any effect.
func (that *App) Update() error {
	if that.ctx.Err() != nil {
		return ebiten.Termination
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}

	x, y := ebiten.CursorPosition()

	if that.newGameButton().contains(x, y) {
		that.manager.Reset(that.ctx)
		return nil
	}

	if y < headerHeight {
		return nil
	}

	col := columnAt(x, that.cellSize)
	if _, err := that.manager.Drop(that.ctx, col); err != nil {
		that.logger.Debug("ignored click", "col", col, "error", err)
	}

	return nil
}

func (that *App) Draw(screen *ebiten.Image) {
	snap := that.manager.Snapshot()

	screen.Fill(colorBackground)

	ebitenutil.DebugPrintAt(screen, snap.StatusLine(), 12, headerHeight/2-8)

	button := that.newGameButton()
	vector.DrawFilledRect(screen, float32(button.x), float32(button.y), float32(button.w), float32(button.h), colorBoard, true)
	ebitenutil.DebugPrintAt(screen, "New Game", button.x+18, button.y+(button.h-16)/2)

	cell := float32(that.cellSize)
	vector.DrawFilledRect(screen, 0, headerHeight, cell*game.Cols, cell*game.Rows, colorBoard, false)

	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			cx := float32(c)*cell + cell/2
			cy := float32(headerHeight) + float32(r)*cell + cell/2
			vector.DrawFilledCircle(screen, cx, cy, cell/2-8, discColor(snap.Board.At(r, c)), true)
		}
	}
}

func (that *App) Layout(_, _ int) (int, int) {
	return that.width(), that.height()
}

type rect struct {
	x, y, w, h int
}

func (that rect) contains(x, y int) bool {
	return x >= that.x && x < that.x+that.w && y >= that.y && y < that.y+that.h
}

func (that *App) newGameButton() rect {
	return rect{x: that.width() - 140, y: 14, w: 120, h: 32}
}

// columnAt maps a pixel x coordinate to the board column under it.
func columnAt(x, cellSize int) int {
	return x / cellSize
}

func discColor(cell game.Cell) color.Color {
	switch cell {
	case game.Player1:
		return colorPlayer1
	case game.Player2:
		return colorPlayer2
	default:
		return colorEmpty
	}
}
