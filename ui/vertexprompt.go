package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NewVertexPrompt returns a one-line input that plays the typed point on board.
// done is called when the prompt should close, after Enter or Escape.
func NewVertexPrompt(board *GoBoardUI, done func()) *tview.InputField {
	field := tview.NewInputField().
		SetLabel(" play at: ").
		SetFieldWidth(8)
	field.SetLabelColor(MenuColors.Label)
	field.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && field.GetText() != "" {
			board.PlayVertex(field.GetText())
		}
		field.SetText("")
		done()
	})
	return field
}

// CreatePromptOverlay places prompt on the bottom row so the board stays visible.
func CreatePromptOverlay(prompt tview.Primitive) *tview.Flex {
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(prompt, 1, 0, true)
}
