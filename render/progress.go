package render

import "sync/atomic"

// RowProgress tracks which rows have been fully computed.
//
// Every row has a set-once flag and a channel that is closed when the flag
// is set. The owning worker calls MarkDone after its last pixel write for
// the row; the writer blocks in Wait. Closing a channel happens before any
// receive that observes the close, so the pixel writes are visible to the
// writer once Wait returns.
type RowProgress struct {
	done  []atomic.Bool
	ready []chan struct{}
}

// NewRowProgress returns progress tracking for rows rows, all pending.
func NewRowProgress(rows int) *RowProgress {
	p := &RowProgress{
		done:  make([]atomic.Bool, rows),
		ready: make([]chan struct{}, rows),
	}
	for i := range p.ready {
		p.ready[i] = make(chan struct{})
	}
	return p
}

// Len returns the number of tracked rows.
func (p *RowProgress) Len() int {
	return len(p.done)
}

// MarkDone flags row as complete and wakes any waiter. It returns false
// if the row was already marked; flags are never reset.
func (p *RowProgress) MarkDone(row int) bool {
	if !p.done[row].CompareAndSwap(false, true) {
		return false
	}
	close(p.ready[row])
	return true
}

// Wait blocks until row has been marked.
func (p *RowProgress) Wait(row int) {
	<-p.ready[row]
}

// Completed counts the rows marked so far.
func (p *RowProgress) Completed() int {
	n := 0
	for i := range p.done {
		if p.done[i].Load() {
			n++
		}
	}
	return n
}
