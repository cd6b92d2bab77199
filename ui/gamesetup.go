package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"

	"github.com/robot-dreams/goban/engine"
)

// setupSizes are the board sizes offered on the setup form.
var setupSizes = []int{9, 13, 19}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form      *tview.Form
	flex      *tview.Flex
	boardSize int
}

// NewGameSetup creates a new game setup form. defaultSize is preselected and
// offered even when it is not one of the standard sizes.
func NewGameSetup(onStart func(engine.GameConfig), onCancel func(), defaultSize int) *GameSetupUI {
	setup := &GameSetupUI{boardSize: defaultSize}

	sizes := setupSizes
	if !lo.Contains(sizes, defaultSize) {
		sizes = append(append([]int(nil), sizes...), defaultSize)
	}
	labels := lo.Map(sizes, func(n int, _ int) string {
		return fmt.Sprintf("%dx%d", n, n)
	})

	form := tview.NewForm()
	form.AddDropDown("Board Size", labels, lo.IndexOf(sizes, defaultSize), func(option string, index int) {
		if index >= 0 && index < len(sizes) {
			setup.boardSize = sizes[index]
		}
	})

	form.AddButton("Start Game", func() {
		onStart(setup.Config())
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Config returns the game configuration currently selected on the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	return engine.GameConfig{BoardSize: s.boardSize}
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
