// Package ui specifies custom controls for tview to assist in playing Go in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/robot-dreams/goban/config"
	"github.com/robot-dreams/goban/engine"
	"github.com/robot-dreams/goban/engine/gtp"
	"github.com/robot-dreams/goban/types"
)

// boardLeft is the number of columns reserved for row numbers.
const boardLeft = 4

type GoBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	selX       int
	selY       int
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
	wheel      *FrameGate
	message    string
	log        zerolog.Logger
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *GoBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *GoBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *GoBoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *GoBoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *GoBoardUI) MoveSelection(h, v int) {
	prevTile := g.SelectedTile()
	if prevTile == nil {
		g.selX = g.BoardState.LastMove.X
		g.selY = g.BoardState.LastMove.Y
		if g.SelectedTile() == nil {
			// No previous move made, use board center
			g.selX = int(g.BoardState.Width() / 2)
			g.selY = int(g.BoardState.Height() / 2)
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *GoBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewGoBoard(app *tview.Application, c *config.Config, hint *tview.TextView, log zerolog.Logger) *GoBoardUI {
	goBoard := &GoBoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
		log:        log,
	}
	// Queue from a goroutine to avoid deadlock when called from the event loop.
	goBoard.wheel = NewFrameGate(func(f func()) {
		go app.QueueUpdateDraw(f)
	})
	hint.SetDynamicColors(true)
	goBoard.SetConfig(c)
	goBoard.Box.SetDrawFunc(goBoard.draw)
	goBoard.Box.SetMouseCapture(goBoard.handleMouse)
	return goBoard
}

func (g *GoBoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return x, y, 1, 1
	}
	w, h := g.BoardState.Width(), g.BoardState.Height()
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			r, style := g.pointStyle(bx, by)
			col := x + boardLeft + 2*bx
			screen.SetContent(col, y+by, r, nil, style)
			screen.SetContent(col+1, y+by, g.connector(bx, by), nil, style)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, w*2 + boardLeft, h + 2
}

// pointStyle picks the rune and colours for board point (x, y). Style
// indexes refer to g.styles.
func (g *GoBoardUI) pointStyle(x, y int) (rune, tcell.Style) {
	theme := &g.cfg.Theme
	cell := types.Cell(g.BoardState.Board[y][x])

	bg, fg := 0, 9
	r := theme.Symbols.BoardSquare
	switch {
	case cell.Occupied():
		r = theme.Symbols.BlackStone
		if cell.Color() == types.White {
			r = theme.Symbols.WhiteStone
		}
		fg = int(cell.Color())
		if theme.DrawStoneBackground {
			bg, fg = int(cell.Color()), int(cell.Color().Opponent())
		}
	case theme.UseGridLines:
		r = gridRune(x, y, g.BoardState.Width(), g.BoardState.Height())
	}

	// Alternate shades on a checkerboard.
	if (x+y)%2 == 1 {
		bg += 3
		if cell.Occupied() && theme.DrawStoneBackground {
			fg += 3
		}
	}

	switch {
	case x == g.selX && y == g.selY:
		if theme.DrawCursorBackground {
			bg = 8
		} else if !theme.UseGridLines {
			r = theme.Symbols.Cursor
		}
	case x == g.BoardState.LastMove.X && y == g.BoardState.LastMove.Y:
		if theme.DrawLastPlayedBackground {
			bg = 7
		} else if !theme.UseGridLines {
			r = theme.Symbols.LastPlayed
		}
	}
	return r, tcell.StyleDefault.Background(g.styles[bg]).Foreground(g.styles[fg])
}

// connector is the rune drawn between point (x, y) and its right neighbour.
func (g *GoBoardUI) connector(x, y int) rune {
	row := g.BoardState.Board[y]
	if !g.cfg.Theme.UseGridLines || row[x] != 0 || x == len(row)-1 || row[x+1] != 0 {
		return ' '
	}
	return '─'
}

// CellAt maps a terminal cell to the board point drawn there.
func (g *GoBoardUI) CellAt(mx, my int) (types.BoardPos, bool) {
	x, y, _, _ := g.Box.GetRect()
	if g.BoardState == nil || mx < x+boardLeft || my < y {
		return types.BoardPos{}, false
	}
	p := types.BoardPos{X: (mx - x - boardLeft) / 2, Y: my - y}
	if p.X >= g.BoardState.Width() || p.Y >= g.BoardState.Height() {
		return types.BoardPos{}, false
	}
	return p, true
}

func (g *GoBoardUI) handleMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	switch action {
	case tview.MouseLeftClick:
		if p, ok := g.CellAt(event.Position()); ok {
			g.selX, g.selY = p.X, p.Y
			g.PlayMove(p.X, p.Y)
		}
	case tview.MouseScrollDown:
		g.WheelUndo()
		return action, nil
	case tview.MouseScrollUp:
		g.WheelRedo()
		return action, nil
	}
	return action, event
}

// ConnectEngine connects the board to a game.
func (g *GoBoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e
	g.message = ""
	g.ResetSelection()
	g.refresh()
}

// PlayMove plays a move at the given coordinates if it is legal.
func (g *GoBoardUI) PlayMove(x, y int) {
	if g.eng == nil {
		return
	}
	vertex := gtp.PosToGTP(types.BoardPos{X: x, Y: y}, g.BoardState.Width())
	if !g.eng.CanPlay(x, y) {
		g.log.Debug().
			Str("color", gtp.ColorToGTP(g.eng.CurrentPlayer())).
			Str("vertex", vertex).
			Msg("rejected move")
		g.message = fmt.Sprintf("illegal move at %s", vertex)
		g.refreshHint()
		return
	}
	captured := g.eng.Play(x, y)
	g.message = ""
	if len(captured) > 0 {
		g.message = fmt.Sprintf("%s captured %d", vertex, len(captured))
	}
	g.refresh()
}

// PlayVertex plays at a point typed in GTP notation, such as "D4".
func (g *GoBoardUI) PlayVertex(vertex string) {
	if g.eng == nil {
		return
	}
	p, err := gtp.GTPToPos(vertex, g.BoardState.Width())
	if err != nil {
		g.log.Debug().Err(err).Msg("rejected vertex")
		g.message = fmt.Sprintf("not a point: %s", strings.TrimSpace(vertex))
		g.refreshHint()
		return
	}
	g.selX, g.selY = p.X, p.Y
	g.PlayMove(p.X, p.Y)
}

// Undo takes back the last move.
func (g *GoBoardUI) Undo() {
	if g.eng == nil || !g.eng.Undo() {
		return
	}
	g.message = ""
	g.refresh()
}

// Redo replays the last undone move.
func (g *GoBoardUI) Redo() {
	if g.eng == nil || !g.eng.Redo() {
		return
	}
	g.message = ""
	g.refresh()
}

// WheelUndo undoes on the next frame unless a wheel request is already pending.
func (g *GoBoardUI) WheelUndo() bool {
	return g.wheel.Submit(g.Undo)
}

// WheelRedo redoes on the next frame unless a wheel request is already pending.
func (g *GoBoardUI) WheelRedo() bool {
	return g.wheel.Submit(g.Redo)
}

// Close disconnects the game.
func (g *GoBoardUI) Close() {
	g.eng = nil
	g.BoardState = &types.BoardState{}
	g.ResetSelection()
}

func (g *GoBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 3
		tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),     // 4
		tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),     // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // 6
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 8
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 9
	}
	g.cfg = c
}

// refresh pulls a new snapshot from the game and updates the side panels.
func (g *GoBoardUI) refresh() {
	if g.eng != nil {
		g.BoardState = g.eng.GetBoardState()
	}
	g.refreshHint()
}

func (g *GoBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
		if g.eng != nil {
			g.infoPanel.SetHistory(g.eng.History())
		}
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine string
	canUndo, canRedo := false, false

	if g.message != "" {
		statusLine = fmt.Sprintf("  [yellow]![-] %s\n", tview.Escape(g.message))
	}

	if g.eng != nil {
		stone := "●"
		if g.eng.CurrentPlayer() == types.White {
			stone = "○"
		}
		turnLine = fmt.Sprintf("  %s %s to move\n", stone, g.eng.CurrentPlayer())
		canUndo, canRedo = g.eng.CanUndo(), g.eng.CanRedo()
	}

	controls := "  hjkl/↑↓←→ move   ⏎/click play   : type a point   f focus   q quit\n  " +
		dimUnless(canUndo, "z/wheel↓ undo") + "   " + dimUnless(canRedo, "x/wheel↑ redo")

	g.hint.SetText(statusLine + turnLine + controls)
}

// dimUnless greys out a key hint whose action is unavailable.
func dimUnless(available bool, text string) string {
	if available {
		return text
	}
	return "[gray]" + text + "[-]"
}

// gridRune returns the box-drawing character for an empty point.
func gridRune(x, y, width, height int) rune {
	if lo.Contains(hoshiPositions[width], [2]int{x, y}) {
		return '◦'
	}
	top, bottom := y == 0, y == height-1
	left, right := x == 0, x == width-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	}
	return '┼'
}

// hoshiPositions lists star points by board size.
var hoshiPositions = map[int][][2]int{
	9:  {{2, 2}, {2, 6}, {4, 4}, {6, 2}, {6, 6}},
	13: {{3, 3}, {3, 9}, {6, 6}, {9, 3}, {9, 9}},
	19: {
		{3, 3}, {3, 9}, {3, 15},
		{9, 3}, {9, 9}, {9, 15},
		{15, 3}, {15, 9}, {15, 15},
	},
}

// drawCoordinates labels columns with GTP letters below the board and rows
// with numbers counted from the bottom on the left.
func (g *GoBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	w, h := g.BoardState.Width(), g.BoardState.Height()
	label := func(sel, last bool) tcell.Style {
		switch {
		case sel:
			return tcell.StyleDefault.Background(g.styles[8])
		case last:
			return tcell.StyleDefault.Background(g.styles[7])
		}
		return tcell.StyleDefault
	}

	if w <= gtp.MaxLetterColumns {
		for col := 0; col < w; col++ {
			letter := rune(gtp.PosToGTP(types.BoardPos{X: col}, w)[0])
			if g.cfg.Theme.FullWidthLetters {
				letter += 'Ａ' - 'A'
			}
			style := label(col == g.selX, col == g.BoardState.LastMove.X)
			s.SetContent(x+boardLeft+2*col, y+h+1, letter, nil, style)
			s.SetContent(x+boardLeft+2*col+1, y+h+1, ' ', nil, style)
		}
	}

	for row := 0; row < h; row++ {
		style := label(row == g.selY, row == g.BoardState.LastMove.Y)
		for i, r := range fmt.Sprintf("%2d", h-row) {
			s.SetContent(x+1+i, y+row, r, nil, style)
		}
	}
}
