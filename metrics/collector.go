package metrics

import (
	"sync"

	"newton_fractal/render"
)

var _ render.RowObserver = (*Collector)(nil)

// Collector accumulates PixelStats from the rows emitted by the image
// writer. ObserveRow is called from the writer goroutine; Snapshot may be
// called from any goroutine.
type Collector struct {
	mu    sync.RWMutex
	stats PixelStats
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// ObserveRow adds one row of classified pixels.
func (c *Collector) ObserveRow(row int, attractors, convergence []uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Rows++
	c.stats.Pixels += int64(len(attractors))
	for _, a := range attractors {
		c.stats.Attractors[a]++
	}
	for _, v := range convergence {
		c.stats.Convergence[v]++
	}
}

// Snapshot returns a copy of the statistics gathered so far.
func (c *Collector) Snapshot() PixelStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
