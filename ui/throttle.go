package ui

import "sync"

// FrameGate lets at most one request wait for the next frame. Requests that
// arrive while one is pending are dropped, so a burst of wheel events turns
// into a single undo or redo per drawn frame.
type FrameGate struct {
	mu       sync.Mutex
	pending  bool
	schedule func(func())
}

// NewFrameGate creates a gate that hands admitted requests to schedule, which
// must run them once on the UI goroutine.
func NewFrameGate(schedule func(func())) *FrameGate {
	return &FrameGate{schedule: schedule}
}

// Submit schedules fn unless a request is already pending.
// Returns true if fn was admitted.
func (f *FrameGate) Submit(fn func()) bool {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return false
	}
	f.pending = true
	f.mu.Unlock()

	f.schedule(func() {
		defer f.release()
		fn()
	})
	return true
}

func (f *FrameGate) release() {
	f.mu.Lock()
	f.pending = false
	f.mu.Unlock()
}

// waiting returns true while an admitted request has not run yet.
func (f *FrameGate) waiting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}
