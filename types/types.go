// Package types contains shared data structures for goban.
package types

import "fmt"

// Color is a player's stone color. Black always moves first.
type Color int

const (
	Black Color = 1
	White Color = 2
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Cell is the state of one intersection: Empty or a stone.
// Stone cells share their numeric value with the stone's Color.
type Cell int

const Empty Cell = 0

// StoneOf returns the cell holding a stone of color c.
func StoneOf(c Color) Cell {
	return Cell(c)
}

// Occupied returns true if the cell holds a stone.
func (c Cell) Occupied() bool {
	return c != Empty
}

// Color returns the stone color of an occupied cell.
func (c Cell) Color() Color {
	return Color(c)
}

// BoardPos represents a position on the board.
// X is the column (left to right), Y the row (top to bottom).
type BoardPos struct {
	X int
	Y int
}

func (p BoardPos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// BoardState is a read-only snapshot of a game for renderers.
// Board is indexed as Board[y][x] where 0=empty, 1=black, 2=white.
type BoardState struct {
	MoveNumber   int     `json:"move_number"`
	PlayerToMove Color   `json:"player_to_move"`
	Board        [][]int `json:"board"`
	LastMove     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
	BlackPrisoners int `json:"black_prisoners"`
	WhitePrisoners int `json:"white_prisoners"`
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// HasLastMove returns true if at least one move is on the board.
func (b *BoardState) HasLastMove() bool {
	return b.LastMove.X >= 0 && b.LastMove.Y >= 0
}

// NewBoardState wraps rows, indexed as rows[y][x], in a snapshot with Black
// to move and no last move. The rows are not copied.
func NewBoardState(rows [][]int) *BoardState {
	state := &BoardState{
		PlayerToMove: Black, // Black plays first
		Board:        rows,
	}
	state.LastMove.X, state.LastMove.Y = -1, -1
	return state
}
