package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robot-dreams/goban/board"
	"github.com/robot-dreams/goban/types"
)

// Game implements GameEngine for two local players.
// A Game is not safe for concurrent use.
type Game struct {
	board     *board.Board
	toMove    types.Color
	history   history
	prisoners map[types.Color]int
	log       zerolog.Logger
}

// New creates an empty game with Black to move.
func New(cfg GameConfig, opts ...Option) *Game {
	g := &Game{
		board:     board.New(cfg.BoardSize),
		toMove:    types.Black,
		prisoners: map[types.Color]int{types.Black: 0, types.White: 0},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the board's side length.
func (g *Game) Size() int {
	return g.board.Size()
}

// At returns the cell at (x, y).
func (g *Game) At(x, y int) types.Cell {
	return g.board.At(types.BoardPos{X: x, Y: y})
}

// CurrentPlayer returns the color about to move.
func (g *Game) CurrentPlayer() types.Color {
	return g.toMove
}

// Prisoners returns how many stones player c has captured.
func (g *Game) Prisoners(c types.Color) int {
	return g.prisoners[c]
}

// MoveNumber returns the number of moves on the board.
func (g *Game) MoveNumber() int {
	return len(g.history.undo)
}

// LastMove returns the most recently placed point, if any.
func (g *Game) LastMove() (types.BoardPos, bool) {
	r, ok := g.history.last()
	return r.Placed, ok
}

// CanUndo reports whether Undo would do anything.
func (g *Game) CanUndo() bool {
	return len(g.history.undo) > 0
}

// CanRedo reports whether Redo would do anything.
func (g *Game) CanRedo() bool {
	return len(g.history.redo) > 0
}

// History returns a copy of the committed moves, oldest first.
func (g *Game) History() []MoveRecord {
	return g.history.records()
}

// CanPlay reports whether the player to move may place a stone at (x, y).
func (g *Game) CanPlay(x, y int) bool {
	p := types.BoardPos{X: x, Y: y}
	if !g.board.InRange(p) || g.board.At(p).Occupied() {
		return false
	}

	g.board.Set(p, types.StoneOf(g.toMove))
	defer g.board.Set(p, types.Empty)

	// Capturing always frees a liberty, so suicide is only checked otherwise.
	if captured := g.captures(p); len(captured) > 0 {
		return !g.isKo(p, captured)
	}
	return g.board.Liberties(p) > 0
}

// isKo reports whether placing at p and capturing exactly captured would
// immediately retake the single stone that just captured at p.
func (g *Game) isKo(p types.BoardPos, captured []types.BoardPos) bool {
	if len(captured) != 1 {
		return false
	}
	prev, ok := g.history.last()
	if !ok || len(prev.Captured) != 1 {
		return false
	}
	return prev.Captured[0] == p && prev.Placed == captured[0]
}

// captures returns every enemy stone adjacent to p, by whole group, that has
// no liberties. The stone at p must already be placed.
func (g *Game) captures(p types.BoardPos) []types.BoardPos {
	enemy := types.StoneOf(g.toMove.Opponent())
	marks := g.board.NewMarks()
	var captured []types.BoardPos
	for _, n := range g.board.Neighbors(p) {
		if g.board.At(n) != enemy {
			continue
		}
		if g.board.Liberties(n) == 0 {
			captured = g.board.CollectGroup(n, marks, captured)
		}
	}
	return captured
}

// Play places a stone for the player to move and returns the captured points.
// Play does not check legality; callers must gate it behind CanPlay.
func (g *Game) Play(x, y int) []types.BoardPos {
	captured := g.commit(types.BoardPos{X: x, Y: y})
	g.history.clearRedo()
	return append([]types.BoardPos(nil), captured...)
}

// commit applies a placement and records it. It leaves the redo stack alone.
func (g *Game) commit(p types.BoardPos) []types.BoardPos {
	if !g.board.InRange(p) || g.board.At(p).Occupied() {
		panic(fmt.Sprintf("engine: play at unavailable point %v", p))
	}

	mover := g.toMove
	g.board.Set(p, types.StoneOf(mover))
	captured := g.captures(p)
	for _, c := range captured {
		g.board.Set(c, types.Empty)
	}
	g.prisoners[mover] += len(captured)
	g.toMove = mover.Opponent()
	g.history.push(MoveRecord{Color: mover, Placed: p, Captured: captured})

	g.log.Debug().
		Stringer("color", mover).
		Stringer("point", p).
		Int("captured", len(captured)).
		Int("move", g.MoveNumber()).
		Msg("play")
	return captured
}

// Undo takes back the most recent move. Returns false if there is none.
func (g *Game) Undo() bool {
	r, ok := g.history.pop()
	if !ok {
		return false
	}

	// The player to move owns the stones that move captured.
	owner := g.toMove
	g.board.Set(r.Placed, types.Empty)
	for _, c := range r.Captured {
		g.board.Set(c, types.StoneOf(owner))
	}
	g.toMove = owner.Opponent()
	g.prisoners[g.toMove] -= len(r.Captured)

	g.log.Debug().
		Stringer("point", r.Placed).
		Int("restored", len(r.Captured)).
		Int("move", g.MoveNumber()).
		Msg("undo")
	return true
}

// Redo replays the most recently undone move. Returns false if there is none.
func (g *Game) Redo() bool {
	p, ok := g.history.popRedo()
	if !ok {
		return false
	}
	g.commit(p)
	g.log.Debug().Stringer("point", p).Int("pending", len(g.history.redo)).Msg("redo")
	return true
}

// GetBoardState returns a snapshot of the current position.
func (g *Game) GetBoardState() *types.BoardState {
	state := types.NewBoardState(g.board.Rows())
	state.MoveNumber = g.MoveNumber()
	state.PlayerToMove = g.toMove
	if last, ok := g.LastMove(); ok {
		state.LastMove.X = last.X
		state.LastMove.Y = last.Y
	}
	state.BlackPrisoners = g.prisoners[types.Black]
	state.WhitePrisoners = g.prisoners[types.White]
	return state
}
