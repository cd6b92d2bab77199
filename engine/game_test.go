package engine

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/robot-dreams/goban/types"
)

var _ GameEngine = (*Game)(nil)

func newGame(size int) *Game {
	return New(GameConfig{BoardSize: size})
}

func pos(x, y int) types.BoardPos {
	return types.BoardPos{X: x, Y: y}
}

// playMoves plays a sequence of moves, failing if any is illegal.
func playMoves(t *testing.T, g *Game, moves [][2]int) {
	t.Helper()
	for i, m := range moves {
		if !g.CanPlay(m[0], m[1]) {
			t.Fatalf("move %d (%v) should be legal", i, m)
		}
		g.Play(m[0], m[1])
	}
}

// snapshot captures everything undo must restore.
type snapshot struct {
	board     [][]int
	toMove    types.Color
	black     int
	white     int
	moveCount int
}

func takeSnapshot(g *Game) snapshot {
	s := g.GetBoardState()
	return snapshot{
		board:     s.Board,
		toMove:    g.CurrentPlayer(),
		black:     g.Prisoners(types.Black),
		white:     g.Prisoners(types.White),
		moveCount: g.MoveNumber(),
	}
}

// koGame sets up the canonical ko shape and has Black take the ko at (5,4),
// capturing the white stone at (4,4). White is to move.
func koGame(t *testing.T) *Game {
	t.Helper()
	g := newGame(19)
	playMoves(t, g, [][2]int{
		{4, 3}, {5, 3},
		{3, 4}, {6, 4},
		{4, 5}, {5, 5},
		{15, 15}, {4, 4},
	})
	captured := g.Play(5, 4)
	if !reflect.DeepEqual(captured, []types.BoardPos{pos(4, 4)}) {
		t.Fatalf("ko capture = %v, want [(4, 4)]", captured)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := New(DefaultConfig())
	if g.Size() != 19 {
		t.Fatalf("Size() = %d, want 19", g.Size())
	}
	if g.CurrentPlayer() != types.Black {
		t.Fatalf("CurrentPlayer() = %v, want Black", g.CurrentPlayer())
	}
	if g.CanUndo() || g.CanRedo() {
		t.Fatal("new game should have empty history")
	}
	if _, ok := g.LastMove(); ok {
		t.Fatal("new game should have no last move")
	}
	for y := 0; y < 19; y++ {
		for x := 0; x < 19; x++ {
			if g.At(x, y) != types.Empty {
				t.Fatalf("cell (%d, %d) = %v, want empty", x, y, g.At(x, y))
			}
		}
	}
}

func TestPlayAlternatesPlayers(t *testing.T) {
	g := newGame(9)
	g.Play(2, 2)
	if g.At(2, 2) != types.StoneOf(types.Black) {
		t.Fatalf("(2, 2) = %v, want black stone", g.At(2, 2))
	}
	if g.CurrentPlayer() != types.White {
		t.Fatalf("CurrentPlayer() = %v, want White", g.CurrentPlayer())
	}
	g.Play(3, 3)
	if g.At(3, 3) != types.StoneOf(types.White) {
		t.Fatalf("(3, 3) = %v, want white stone", g.At(3, 3))
	}
	if g.CurrentPlayer() != types.Black {
		t.Fatalf("CurrentPlayer() = %v, want Black", g.CurrentPlayer())
	}
	if last, ok := g.LastMove(); !ok || last != pos(3, 3) {
		t.Fatalf("LastMove() = %v, %v, want (3, 3)", last, ok)
	}
}

func TestCanPlayOccupiedAndOutOfRange(t *testing.T) {
	g := newGame(9)
	g.Play(4, 4)
	if g.CanPlay(4, 4) {
		t.Fatal("occupied point should not be playable")
	}
	for _, m := range [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}} {
		if g.CanPlay(m[0], m[1]) {
			t.Fatalf("out of range %v should not be playable", m)
		}
	}
}

func TestSuicideRejected(t *testing.T) {
	g := newGame(19)
	playMoves(t, g, [][2]int{
		{15, 15}, {4, 5},
		{15, 16}, {6, 5},
		{15, 17}, {5, 4},
		{15, 18}, {5, 6},
	})
	if g.CurrentPlayer() != types.Black {
		t.Fatalf("CurrentPlayer() = %v, want Black", g.CurrentPlayer())
	}
	if g.CanPlay(5, 5) {
		t.Fatal("playing into a point with no liberties should be suicide")
	}
}

func TestGroupSuicideRejected(t *testing.T) {
	// Black fills its own last liberty: the group, not the stone, has none.
	g := newGame(5)
	playMoves(t, g, [][2]int{
		{0, 0}, {2, 0},
		{1, 0}, {1, 1},
		{4, 4}, {0, 2},
	})
	// Black (0,0)-(1,0) has one liberty left at (0,1).
	if g.CanPlay(0, 1) {
		t.Fatal("filling the group's last liberty should be suicide")
	}
	// A stone with no empty neighbors of its own is fine if its group has liberties.
	g2 := newGame(5)
	playMoves(t, g2, [][2]int{
		{1, 2}, {0, 1},
		{2, 1}, {4, 4},
		{1, 0}, {4, 3},
		{0, 0}, {4, 2},
	})
	// (1,1) touches only black stones and white (0,1); the merged group lives.
	if !g2.CanPlay(1, 1) {
		t.Fatal("connecting into a living group should be legal")
	}
}

func TestCaptureCorner(t *testing.T) {
	g := newGame(19)
	playMoves(t, g, [][2]int{
		{10, 10}, {0, 0},
		{0, 1}, {18, 18},
	})
	if !g.CanPlay(1, 0) {
		t.Fatal("capturing move should be legal")
	}
	captured := g.Play(1, 0)
	if !reflect.DeepEqual(captured, []types.BoardPos{pos(0, 0)}) {
		t.Fatalf("captured = %v, want [(0, 0)]", captured)
	}
	if g.At(0, 0) != types.Empty {
		t.Fatalf("(0, 0) = %v, want empty", g.At(0, 0))
	}
	if g.Prisoners(types.Black) != 1 || g.Prisoners(types.White) != 0 {
		t.Fatalf("prisoners = %d/%d, want 1/0", g.Prisoners(types.Black), g.Prisoners(types.White))
	}
}

func TestCaptureMultipleGroups(t *testing.T) {
	// Black's move at (2,0) captures two separate white groups at once.
	g := newGame(5)
	playMoves(t, g, [][2]int{
		{0, 1}, {1, 0},
		{1, 1}, {3, 0},
		{3, 1}, {0, 0},
		{4, 1}, {4, 0},
	})
	// White groups: (0,0)-(1,0) and (3,0)-(4,0); both have only (2,0) left.
	captured := g.Play(2, 0)
	if len(captured) != 4 {
		t.Fatalf("captured %d stones, want 4: %v", len(captured), captured)
	}
	for _, p := range []types.BoardPos{pos(0, 0), pos(1, 0), pos(3, 0), pos(4, 0)} {
		if g.At(p.X, p.Y) != types.Empty {
			t.Fatalf("%v should have been captured", p)
		}
	}
	if g.Prisoners(types.Black) != 4 {
		t.Fatalf("Prisoners(Black) = %d, want 4", g.Prisoners(types.Black))
	}
}

func TestCaptureGroupTouchedTwice(t *testing.T) {
	// Black's last move touches two members of the same white group.
	g := newGame(5)
	playMoves(t, g, [][2]int{
		{2, 0}, {0, 0},
		{2, 1}, {1, 0},
		{1, 2}, {1, 1},
	})
	captured := g.Play(0, 1)
	if len(captured) != 3 {
		t.Fatalf("captured %v, want 3 stones", captured)
	}
	seen := map[types.BoardPos]bool{}
	for _, p := range captured {
		if seen[p] {
			t.Fatalf("duplicate captured point %v in %v", p, captured)
		}
		seen[p] = true
	}
	for _, p := range []types.BoardPos{pos(0, 0), pos(1, 0), pos(1, 1)} {
		if !seen[p] {
			t.Fatalf("%v missing from captured set %v", p, captured)
		}
	}
}

func TestCapturingMoveIntoNoLiberties(t *testing.T) {
	// Black plays into (1,0) where it would have no liberties, but it captures.
	g := newGame(5)
	playMoves(t, g, [][2]int{
		{0, 1}, {2, 0},
		{4, 4}, {1, 1},
		{4, 3}, {0, 0},
	})
	// White (0,0) has a single liberty at (1,0); Black's stone there is
	// surrounded by white (2,0), (1,1) and the captured (0,0).
	if !g.CanPlay(1, 0) {
		t.Fatal("a capturing move is never suicide")
	}
	captured := g.Play(1, 0)
	if !reflect.DeepEqual(captured, []types.BoardPos{pos(0, 0)}) {
		t.Fatalf("captured = %v, want [(0, 0)]", captured)
	}
}

func TestKo(t *testing.T) {
	g := koGame(t)
	if g.CurrentPlayer() != types.White {
		t.Fatalf("CurrentPlayer() = %v, want White", g.CurrentPlayer())
	}
	if g.CanPlay(4, 4) {
		t.Fatal("immediate recapture of the ko should be illegal")
	}

	// White plays elsewhere, Black answers elsewhere; the ko opens up.
	playMoves(t, g, [][2]int{{15, 3}, {3, 15}})
	if !g.CanPlay(4, 4) {
		t.Fatal("recapture after an intervening exchange should be legal")
	}
	captured := g.Play(4, 4)
	if !reflect.DeepEqual(captured, []types.BoardPos{pos(5, 4)}) {
		t.Fatalf("captured = %v, want [(5, 4)]", captured)
	}
	// Now Black may not retake immediately.
	if g.CanPlay(5, 4) {
		t.Fatal("Black's immediate retake should be illegal")
	}
}

func TestKoDoesNotApplyToMultiStoneRecapture(t *testing.T) {
	// Black captures one stone at (1,0) with (2,0), but the black stones
	// (2,0)-(3,0) are left with (1,0) as their only liberty. White's
	// recapture there takes two stones, which is not ko.
	g := newGame(5)
	playMoves(t, g, [][2]int{
		{0, 0}, {1, 0},
		{1, 1}, {2, 1},
		{3, 0}, {3, 1},
		{4, 4}, {4, 0},
	})
	captured := g.Play(2, 0)
	if !reflect.DeepEqual(captured, []types.BoardPos{pos(1, 0)}) {
		t.Fatalf("captured = %v, want [(1, 0)]", captured)
	}
	if !g.CanPlay(1, 0) {
		t.Fatal("recapturing two stones should not be ko")
	}
	captured = g.Play(1, 0)
	if len(captured) != 2 {
		t.Fatalf("captured = %v, want 2 stones", captured)
	}
	if g.isKo(pos(0, 0), []types.BoardPos{pos(1, 1), pos(1, 2)}) {
		t.Fatal("a two-stone capture is never ko")
	}
}

func TestKoOnEmptyHistory(t *testing.T) {
	g := newGame(9)
	if g.isKo(pos(0, 0), []types.BoardPos{pos(1, 0)}) {
		t.Fatal("ko should never apply without history")
	}
}

func TestCanPlayIsIdempotent(t *testing.T) {
	g := koGame(t)
	before := takeSnapshot(g)
	for _, p := range []types.BoardPos{pos(4, 4), pos(0, 0), pos(5, 4), pos(10, 10)} {
		first := g.CanPlay(p.X, p.Y)
		for i := 0; i < 3; i++ {
			if got := g.CanPlay(p.X, p.Y); got != first {
				t.Fatalf("CanPlay(%v) changed from %v to %v", p, first, got)
			}
		}
	}
	if after := takeSnapshot(g); !reflect.DeepEqual(before, after) {
		t.Fatal("CanPlay changed the game")
	}
}

// sequence is a legal game fragment that includes captures and a ko.
var sequence = [][2]int{
	{4, 3}, {5, 3},
	{3, 4}, {6, 4},
	{4, 5}, {5, 5},
	{15, 15}, {4, 4},
	{5, 4}, // Black takes the ko
	{15, 3},
	{3, 15},
	{4, 4}, // White retakes
	{0, 1}, {0, 0},
	{1, 0}, // Black captures the corner stone
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := newGame(19)
	var states []snapshot
	for _, m := range sequence {
		states = append(states, takeSnapshot(g))
		if !g.CanPlay(m[0], m[1]) {
			t.Fatalf("move %v should be legal", m)
		}
		g.Play(m[0], m[1])
	}
	final := takeSnapshot(g)

	for i := len(sequence) - 1; i >= 0; i-- {
		if !g.Undo() {
			t.Fatalf("Undo() returned false at move %d", i)
		}
		if got := takeSnapshot(g); !reflect.DeepEqual(got, states[i]) {
			t.Fatalf("after undoing move %d: got %+v, want %+v", i, got, states[i])
		}
	}
	if g.Undo() {
		t.Fatal("Undo() on empty history should return false")
	}

	for i := range sequence {
		if !g.Redo() {
			t.Fatalf("Redo() returned false at move %d", i)
		}
		if i+1 < len(states) {
			if got := takeSnapshot(g); !reflect.DeepEqual(got, states[i+1]) {
				t.Fatalf("after redoing move %d: got %+v, want %+v", i, got, states[i+1])
			}
		}
	}
	if got := takeSnapshot(g); !reflect.DeepEqual(got, final) {
		t.Fatalf("after redo: got %+v, want %+v", got, final)
	}
	if g.Redo() {
		t.Fatal("Redo() with nothing undone should return false")
	}
}

func TestUndoRestoresCapturedStones(t *testing.T) {
	g := koGame(t)
	if g.At(4, 4) != types.Empty {
		t.Fatal("(4, 4) should be empty after the capture")
	}
	if !g.Undo() {
		t.Fatal("Undo() should succeed")
	}
	if g.At(4, 4) != types.StoneOf(types.White) {
		t.Fatalf("(4, 4) = %v, want white stone restored", g.At(4, 4))
	}
	if g.At(5, 4) != types.Empty {
		t.Fatalf("(5, 4) = %v, want empty", g.At(5, 4))
	}
	if g.CurrentPlayer() != types.Black {
		t.Fatalf("CurrentPlayer() = %v, want Black", g.CurrentPlayer())
	}
	if g.Prisoners(types.Black) != 0 {
		t.Fatalf("Prisoners(Black) = %d, want 0", g.Prisoners(types.Black))
	}
}

func TestRedoInvalidatedByNewMove(t *testing.T) {
	g := newGame(9)
	playMoves(t, g, [][2]int{{2, 2}, {6, 6}, {2, 6}})
	g.Undo()
	g.Undo()
	if !g.CanRedo() {
		t.Fatal("CanRedo() should be true after undo")
	}
	playMoves(t, g, [][2]int{{4, 4}})
	if g.CanRedo() {
		t.Fatal("a new move should clear the redo stack")
	}
	if g.Redo() {
		t.Fatal("Redo() after a new move should return false")
	}
}

func TestRedoKeepsRemainingRedoStack(t *testing.T) {
	g := newGame(9)
	playMoves(t, g, [][2]int{{2, 2}, {6, 6}, {2, 6}})
	g.Undo()
	g.Undo()
	g.Undo()
	g.Redo()
	if !g.CanRedo() {
		t.Fatal("one redo should leave the other undone moves redoable")
	}
	g.Redo()
	g.Redo()
	if g.MoveNumber() != 3 || g.At(2, 6) != types.StoneOf(types.Black) {
		t.Fatalf("redo did not restore all moves: move %d", g.MoveNumber())
	}
}

func TestHistoryReplaysToBoard(t *testing.T) {
	g := newGame(19)
	playMoves(t, g, sequence)

	replay := newGame(19)
	for i, r := range g.History() {
		if replay.CurrentPlayer() != r.Color {
			t.Fatalf("record %d color = %v, want %v", i, r.Color, replay.CurrentPlayer())
		}
		captured := replay.Play(r.Placed.X, r.Placed.Y)
		if !reflect.DeepEqual(captured, r.Captured) {
			t.Fatalf("record %d captured %v on replay, want %v", i, captured, r.Captured)
		}
	}
	if !replay.board.Equal(g.board) {
		t.Fatalf("replayed board differs:\n%s\nwant:\n%s", replay.board, g.board)
	}
}

func TestHistoryIsCopy(t *testing.T) {
	g := newGame(19)
	playMoves(t, g, sequence)
	h := g.History()
	last := len(h) - 1
	h[last].Captured[0] = pos(18, 18)
	if g.History()[last].Captured[0] == pos(18, 18) {
		t.Fatal("History() should not expose internal records")
	}

	captured := newGame(19)
	playMoves(t, captured, [][2]int{{10, 10}, {0, 0}, {0, 1}, {18, 18}})
	out := captured.Play(1, 0)
	out[0] = pos(9, 9)
	if captured.History()[4].Captured[0] != pos(0, 0) {
		t.Fatal("Play() should return a copy of the captured set")
	}
}

func TestPlayOnOccupiedPanics(t *testing.T) {
	g := newGame(9)
	g.Play(3, 3)
	defer func() {
		if recover() == nil {
			t.Fatal("Play on an occupied point should panic")
		}
	}()
	g.Play(3, 3)
}

func TestGetBoardState(t *testing.T) {
	g := newGame(9)
	playMoves(t, g, [][2]int{{1, 0}, {0, 0}, {0, 1}})
	s := g.GetBoardState()
	if s.Width() != 9 || s.Height() != 9 {
		t.Fatalf("size = %dx%d, want 9x9", s.Width(), s.Height())
	}
	if s.Board[0][1] != 1 || s.Board[1][0] != 1 || s.Board[0][0] != 0 {
		t.Fatalf("unexpected board rows: %v", s.Board[:2])
	}
	if s.MoveNumber != 3 || s.PlayerToMove != types.White {
		t.Fatalf("move %d to move %v, want 3 and White", s.MoveNumber, s.PlayerToMove)
	}
	if s.LastMove.X != 0 || s.LastMove.Y != 1 {
		t.Fatalf("last move = %+v, want (0, 1)", s.LastMove)
	}
	if s.BlackPrisoners != 1 || s.WhitePrisoners != 0 {
		t.Fatalf("prisoners = %d/%d, want 1/0", s.BlackPrisoners, s.WhitePrisoners)
	}
	// The snapshot is detached from the game.
	s.Board[4][4] = 2
	if g.At(4, 4) != types.Empty {
		t.Fatal("GetBoardState() should return a copy")
	}
}

func TestGetBoardStateNewGame(t *testing.T) {
	s := newGame(5).GetBoardState()
	if s.Width() != 5 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, want 5x5", s.Width(), s.Height())
	}
	if s.HasLastMove() {
		t.Fatalf("last move = %+v on an empty board", s.LastMove)
	}
	if s.MoveNumber != 0 || s.PlayerToMove != types.Black {
		t.Fatalf("move %d to move %v, want 0 and Black", s.MoveNumber, s.PlayerToMove)
	}
}

func TestIndependentGames(t *testing.T) {
	a := newGame(9)
	b := newGame(9)
	a.Play(4, 4)
	if b.At(4, 4) != types.Empty || b.CurrentPlayer() != types.Black {
		t.Fatal("games should not share state")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	g := New(GameConfig{BoardSize: 9}, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	g.Play(4, 4)
	g.Undo()
	g.Redo()
	g.CanPlay(5, 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d log lines, want 4 (play, undo, play, redo):\n%s", len(lines), buf.String())
	}
	for i, msg := range []string{`"play"`, `"undo"`, `"play"`, `"redo"`} {
		if !strings.Contains(lines[i], msg) {
			t.Fatalf("line %d = %s, want message %s", i, lines[i], msg)
		}
	}
}
