// Package metrics collects statistics about a render and packages them
// into a run report.
// This file contains the plain data types.
package metrics

import (
	"time"

	"newton_fractal/newton"
	"newton_fractal/palette"
)

// PixelStats aggregates the classified pixels of a render.
type PixelStats struct {
	// Rows is the number of rows observed so far
	Rows int64 `json:"rows"`

	// Pixels is the number of pixels observed so far
	Pixels int64 `json:"pixels"`

	// Attractors counts pixels per attractor class; index 9 is the shared
	// escape/origin sentinel
	Attractors [palette.AttractorColors]int64 `json:"attractors"`

	// Convergence is the histogram of clamped iteration counts
	Convergence [newton.MaxConvergence]int64 `json:"convergence"`
}

// MeanConvergence returns the average convergence count, or 0 when no
// pixel has been observed.
func (s PixelStats) MeanConvergence() float64 {
	if s.Pixels == 0 {
		return 0
	}
	var sum int64
	for count, n := range s.Convergence {
		sum += int64(count) * n
	}
	return float64(sum) / float64(s.Pixels)
}

// SentinelShare returns the fraction of pixels in the sentinel class.
func (s PixelStats) SentinelShare() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Attractors[newton.Sentinel]) / float64(s.Pixels)
}

// WorkerMetrics describes one compute worker.
type WorkerMetrics struct {
	// Index is the worker number
	Index int `json:"index"`

	// Rows is the number of rows the worker owned
	Rows int `json:"rows"`

	// Busy is the time the worker spent computing
	Busy time.Duration `json:"busy_ns"`
}
