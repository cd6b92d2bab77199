// Package engine implements the rules of Go: legality, captures and history.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/robot-dreams/goban/types"
)

// GameEngine defines the interface the board UI uses to drive a game.
type GameEngine interface {
	// CanPlay reports whether the player to move may place a stone at (x, y).
	// It never changes the game.
	CanPlay(x, y int) bool

	// Play places a stone for the player to move and returns the captured points.
	// The caller must have checked CanPlay for the same position first.
	Play(x, y int) []types.BoardPos

	// Undo takes back the most recent move. Returns false if there is none.
	Undo() bool

	// Redo replays the most recently undone move. Returns false if there is none.
	Redo() bool

	// CanUndo reports whether Undo would do anything.
	CanUndo() bool

	// CanRedo reports whether Redo would do anything.
	CanRedo() bool

	// CurrentPlayer returns the color about to move.
	CurrentPlayer() types.Color

	// Prisoners returns how many stones the given player has captured.
	Prisoners(c types.Color) int

	// History returns the committed moves, oldest first.
	History() []MoveRecord

	// GetBoardState returns a snapshot of the current position.
	GetBoardState() *types.BoardState
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize int // side length of the square board
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize: 19,
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger makes the game log committed moves, undos and redos.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}
