// Package board holds the grid of a Go game and answers questions about
// connected groups and their liberties. It never decides legality.
package board

import (
	"fmt"

	"github.com/robot-dreams/goban/types"
)

// Board is a square grid of cells.
type Board struct {
	size  int
	cells []types.Cell
}

// Marks is a visited set sized to one board, indexed like the board's cells.
type Marks []bool

// neighbor offsets: left, right, up, down
var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// New creates an empty size x size board.
func New(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]types.Cell, size*size),
	}
}

// Size returns the board's side length.
func (b *Board) Size() int {
	return b.size
}

// InRange reports whether p lies on the board.
func (b *Board) InRange(p types.BoardPos) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

func (b *Board) index(p types.BoardPos) int {
	return p.Y*b.size + p.X
}

// At returns the cell at p. p must be in range.
func (b *Board) At(p types.BoardPos) types.Cell {
	return b.cells[b.index(p)]
}

// Set overwrites the cell at p. p must be in range.
func (b *Board) Set(p types.BoardPos, c types.Cell) {
	b.cells[b.index(p)] = c
}

// NewMarks returns an empty visited set for this board.
func (b *Board) NewMarks() Marks {
	return make(Marks, len(b.cells))
}

// Neighbors returns the in-range orthogonal neighbors of p, in the order
// left, right, up, down.
func (b *Board) Neighbors(p types.BoardPos) []types.BoardPos {
	result := make([]types.BoardPos, 0, 4)
	for _, d := range offsets {
		n := types.BoardPos{X: p.X + d[0], Y: p.Y + d[1]}
		if b.InRange(n) {
			result = append(result, n)
		}
	}
	return result
}

// Liberties returns the number of distinct empty points adjacent to the group
// containing p. p must hold a stone.
func (b *Board) Liberties(p types.BoardPos) int {
	color := b.At(p)
	visited := b.NewMarks()
	visited[b.index(p)] = true
	stack := []types.BoardPos{p}
	count := 0

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range b.Neighbors(cur) {
			i := b.index(n)
			if visited[i] {
				continue
			}
			switch b.cells[i] {
			case types.Empty:
				// Marked so a liberty shared by several members counts once.
				visited[i] = true
				count++
			case color:
				visited[i] = true
				stack = append(stack, n)
			}
		}
	}
	return count
}

// Group returns every stone of the maximal same-color group containing p.
// p must hold a stone. The first element is p itself.
func (b *Board) Group(p types.BoardPos) []types.BoardPos {
	return b.CollectGroup(p, b.NewMarks(), nil)
}

// CollectGroup appends to dst the members of the group containing p that are
// not yet in marks, marking them as it goes. Sharing marks across calls
// collects a union of groups without duplicates.
func (b *Board) CollectGroup(p types.BoardPos, marks Marks, dst []types.BoardPos) []types.BoardPos {
	start := b.index(p)
	if marks[start] {
		return dst
	}
	color := b.cells[start]
	marks[start] = true
	stack := []types.BoardPos{p}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dst = append(dst, cur)
		for _, n := range b.Neighbors(cur) {
			i := b.index(n)
			if marks[i] || b.cells[i] != color {
				continue
			}
			marks[i] = true
			stack = append(stack, n)
		}
	}
	return dst
}

// Rows returns a copy of the grid as rows[y][x], 0=empty, 1=black, 2=white.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for y := range rows {
		rows[y] = make([]int, b.size)
		for x := range rows[y] {
			rows[y][x] = int(b.cells[y*b.size+x])
		}
	}
	return rows
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// String renders the board with one line per row; useful in test failures.
func (b *Board) String() string {
	out := make([]byte, 0, (b.size+1)*b.size)
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			switch b.cells[y*b.size+x] {
			case types.StoneOf(types.Black):
				out = append(out, 'X')
			case types.StoneOf(types.White):
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
