// goban is a terminal Go board for two players sharing one keyboard.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/robot-dreams/goban/config"
	"github.com/robot-dreams/goban/engine"
	"github.com/robot-dreams/goban/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagBoardSize  = flag.Int("boardsize", 0, "Board size (1-25)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GoBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var vertexPrompt *tview.InputField
var cfg *config.Config
var logger zerolog.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("goban %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "goban: %s\n", err)
		os.Exit(1)
	}

	if *flagBoardSize != 0 {
		cfg.Board.Size = *flagBoardSize
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "goban: %s\n", err)
			os.Exit(2)
		}
	}

	logFile := initLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	quickStart := *flagQuickStart || *flagBoardSize > 0 || *flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ goban ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewGoBoard(app, cfg, gameHint, logger)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)
	gameBoard.Box.SetInputCapture(handleGameKey)

	vertexPrompt = ui.NewVertexPrompt(gameBoard, func() {
		rootPage.HidePage("vertex")
		app.SetFocus(gameBoard.Box)
	})

	setupUI := ui.NewGameSetup(
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		cfg.Board.Size,
	)

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("vertex", ui.CreatePromptOverlay(vertexPrompt), true, false)

	if quickStart {
		startGame(engine.GameConfig{BoardSize: cfg.Board.Size})
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.Error().Err(err).Msg("terminal application failed")
		fmt.Fprintf(os.Stderr, "goban: %s\n", err)
		os.Exit(1)
	}
}

// initLogging points the logger at the state directory. Logging is disabled
// if the file cannot be opened, since the terminal belongs to the board.
func initLogging() *os.File {
	logger = zerolog.Nop()
	path, err := config.LogFilePath()
	if err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	logger = zerolog.New(f).Level(cfg.Level()).With().Timestamp().Logger()
	logger.Info().Str("version", Version).Int("boardsize", cfg.Board.Size).Msg("starting")
	return f
}

func handleGameKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
		if gameBoard.SelectedTile() != nil {
			gameBoard.ResetSelection()
		} else {
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
		}
		return nil
	}
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyDown:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyRight:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyEnter:
		selTile := gameBoard.SelectedTile()
		if selTile == nil {
			return nil
		}
		gameBoard.PlayMove(selTile.X, selTile.Y)
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveSelection(-1, 0)
		case 'j':
			gameBoard.MoveSelection(0, 1)
		case 'k':
			gameBoard.MoveSelection(0, -1)
		case 'l':
			gameBoard.MoveSelection(1, 0)
		case 'z':
			gameBoard.Undo()
		case 'x':
			gameBoard.Redo()
		case ':':
			rootPage.ShowPage("vertex")
			app.SetFocus(vertexPrompt)
			return nil
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
	}
	return event
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	logger.Info().Int("boardsize", gameCfg.BoardSize).Msg("new game")
	gameBoard.ConnectEngine(engine.New(gameCfg, engine.WithLogger(logger)))
	if gameBoard.IsFocusMode() {
		ui.BuildFocusLayout(gameFrame, gameBoard)
	}
	rootPage.SwitchToPage("gameview")
}
