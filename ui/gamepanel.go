package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/robot-dreams/goban/engine"
	"github.com/robot-dreams/goban/engine/gtp"
	"github.com/robot-dreams/goban/types"
)

// maxVisibleMoves is how many recent moves the info panel lists.
const maxVisibleMoves = 12

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	history    []engine.MoveRecord
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetHistory sets the committed moves to list.
func (p *GameInfoPanel) SetHistory(history []engine.MoveRecord) {
	p.history = history
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	if p.boardState == nil || p.boardState.Width() == 0 {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]To move:[-:-:-] %s\n", p.boardState.PlayerToMove)
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.boardState.MoveNumber)
	text += fmt.Sprintf("[white]Prisoners:[-:-:-] B %d  W %d\n", p.boardState.BlackPrisoners, p.boardState.WhitePrisoners)

	if len(p.history) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		start := 0
		if len(p.history) > maxVisibleMoves {
			start = len(p.history) - maxVisibleMoves
		}

		for i := start; i < len(p.history); i++ {
			m := p.history[i]

			colorStr := "[white]B[-]"
			if m.Color == types.White {
				colorStr = "[dimgray]W[-]"
			}

			marker := " "
			if i == len(p.history)-1 {
				marker = "[white]>[-]"
			}

			capStr := ""
			if len(m.Captured) > 0 {
				capStr = fmt.Sprintf(" [red]x%d[-]", len(m.Captured))
			}

			coord := gtp.PosToGTP(m.Placed, p.boardState.Width())
			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s%s\n", marker, i+1, colorStr, coord, capStr)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// hintRows is the height of the bordered status bar under the board.
const hintRows = 6

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *GoBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *GoBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	board.refreshHint()

	// board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, hintRows, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *GoBoardUI) {
	gameFrame.Clear()

	boardWidth := 22 // 9x9
	boardHeight := 11
	if board.BoardState != nil && board.BoardState.Width() > 0 {
		boardWidth = board.BoardState.Width()*2 + boardLeft
		boardHeight = board.BoardState.Height() + 2
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
