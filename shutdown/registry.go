// Package shutdown runs the end-of-run cleanup in a fixed order and aborts
// the process on SIGINT or SIGTERM.
package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"newton_fractal/core"
)

// Priorities used by the renderer. Lower runs first.
const (
	PriorityFlush    = 10 // flush buffered image writers
	PriorityFiles    = 20 // close image files
	PriorityDatabase = 30 // close the history database
	PriorityLogger   = 90 // sync the logger last
)

type entry struct {
	name     string
	fn       core.ShutdownFunc
	priority int
	seq      int
}

// Registry holds cleanup functions and runs them once, by priority.
// Functions with equal priority run in registration order.
//
// Usage:
//
//	registry := NewRegistry()
//	registry.Register("attractor file", PriorityFiles, func(ctx context.Context) error {
//	    return f.Close()
//	})
//	errs := registry.Run(ctx)
type Registry struct {
	mu      sync.Mutex
	entries []entry
	closed  bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn under name. Registration after Run is ignored.
func (r *Registry) Register(name string, priority int, fn core.ShutdownFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.entries = append(r.entries, entry{name: name, fn: fn, priority: priority, seq: len(r.entries)})
}

// Run calls every registered function in priority order, even after
// failures, and returns the failures wrapped with their names. Only the
// first call does anything.
func (r *Registry) Run(ctx context.Context) []error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	ordered := r.sortedLocked()
	r.mu.Unlock()

	var errs []error
	for _, e := range ordered {
		if err := e.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errs
}

// Names returns the registered names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ordered := r.sortedLocked()
	names := make([]string, len(ordered))
	for i, e := range ordered {
		names[i] = e.name
	}
	return names
}

// Count returns the number of registered functions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) sortedLocked() []entry {
	ordered := make([]entry, len(r.entries))
	copy(ordered, r.entries)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].priority != ordered[j].priority {
			return ordered[i].priority < ordered[j].priority
		}
		return ordered[i].seq < ordered[j].seq
	})
	return ordered
}
