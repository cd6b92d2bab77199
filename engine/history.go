package engine

import (
	"github.com/samber/lo"

	"github.com/robot-dreams/goban/types"
)

// MoveRecord is everything one committed placement changed.
type MoveRecord struct {
	Color    types.Color
	Placed   types.BoardPos
	Captured []types.BoardPos
}

func (r MoveRecord) clone() MoveRecord {
	r.Captured = append([]types.BoardPos(nil), r.Captured...)
	return r
}

// history keeps committed moves for undo and undone placements for redo.
type history struct {
	undo []MoveRecord
	redo []types.BoardPos
}

func (h *history) push(r MoveRecord) {
	h.undo = append(h.undo, r)
}

func (h *history) last() (MoveRecord, bool) {
	if len(h.undo) == 0 {
		return MoveRecord{}, false
	}
	return h.undo[len(h.undo)-1], true
}

func (h *history) pop() (MoveRecord, bool) {
	r, ok := h.last()
	if ok {
		h.undo = h.undo[:len(h.undo)-1]
		h.redo = append(h.redo, r.Placed)
	}
	return r, ok
}

func (h *history) popRedo() (types.BoardPos, bool) {
	if len(h.redo) == 0 {
		return types.BoardPos{}, false
	}
	p := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return p, true
}

func (h *history) clearRedo() {
	h.redo = h.redo[:0]
}

func (h *history) records() []MoveRecord {
	return lo.Map(h.undo, func(r MoveRecord, _ int) MoveRecord {
		return r.clone()
	})
}
