// Package gtp converts board positions to and from GTP (Go Text Protocol)
// vertex notation for display.
package gtp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robot-dreams/goban/types"
)

// GTP coordinate system:
// - Columns: A-Z skipping I to avoid confusion with 1 (25 columns at most)
// - Rows: 1-N (from bottom of board)
// - Example: D4, Q16, K10
//
// Board coordinate system:
// - X: 0-(N-1) (left to right)
// - Y: 0-(N-1) (top to bottom)
// - Example: (3, 15) for D4 on a 19x19 board

// MaxLetterColumns is the widest board that GTP letters can describe.
const MaxLetterColumns = 25

// ErrInvalidVertex is returned for text that is not a vertex on the board.
var ErrInvalidVertex = errors.New("invalid vertex")

// PosToGTP converts a board position to GTP notation.
// For a 19x19 board: (0, 18) -> A1, (3, 15) -> D4, (15, 3) -> Q16.
// Boards wider than MaxLetterColumns use numeric "X-Y" (1-based) instead.
func PosToGTP(p types.BoardPos, size int) string {
	row := size - p.Y
	if size > MaxLetterColumns {
		return fmt.Sprintf("%d-%d", p.X+1, row)
	}

	// Column: A-Z, skipping I
	col := 'A' + rune(p.X)
	if p.X >= 8 {
		col++ // Skip 'I'
	}
	return fmt.Sprintf("%c%d", col, row)
}

// GTPToPos converts GTP notation to a board position.
// For a 19x19 board: A1 -> (0, 18), D4 -> (3, 15), Q16 -> (15, 3).
func GTPToPos(vertex string, size int) (types.BoardPos, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))

	if vertex == "PASS" || vertex == "RESIGN" {
		return types.BoardPos{}, fmt.Errorf("%w: %s is not a board point", ErrInvalidVertex, vertex)
	}

	if len(vertex) < 2 {
		return types.BoardPos{}, fmt.Errorf("%w: %q", ErrInvalidVertex, vertex)
	}

	// Parse column (A-Z, no I)
	letter := vertex[0]
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return types.BoardPos{}, fmt.Errorf("%w: bad column in %s", ErrInvalidVertex, vertex)
	}
	col := int(letter - 'A')
	if letter > 'I' {
		col-- // Account for skipped 'I'
	}

	// Parse row
	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return types.BoardPos{}, fmt.Errorf("%w: bad row in %s", ErrInvalidVertex, vertex)
	}

	// Convert row to Y coordinate (invert from bottom-up to top-down)
	p := types.BoardPos{X: col, Y: size - row}
	if p.X < 0 || p.X >= size || p.Y < 0 || p.Y >= size {
		return types.BoardPos{}, fmt.Errorf("%w: %s out of bounds", ErrInvalidVertex, vertex)
	}
	return p, nil
}

// ColorToGTP converts a color to its GTP color string.
func ColorToGTP(c types.Color) string {
	if c == types.Black {
		return "black"
	}
	return "white"
}
