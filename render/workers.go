package render

import (
	"time"

	"newton_fractal/newton"
)

// WorkerStats describes the work done by one worker.
type WorkerStats struct {
	// Index is the worker number in [0, n).
	Index int

	// Rows is the number of rows the worker computed.
	Rows int

	// Computed lists those rows in the order they were finished.
	Computed []int

	// Busy is the wall time the worker spent computing.
	Busy time.Duration
}

// worker computes the rows owned by one member of the pool.
type worker struct {
	index      int
	count      int
	grid       newton.Grid
	classifier *newton.Classifier
	maps       *Maps
	progress   *RowProgress
}

// run fills every owned row left to right and marks it done afterwards.
// Only this worker writes its rows, so no locking is needed.
func (w *worker) run() WorkerStats {
	start := time.Now()
	rows := RowsFor(w.index, w.count, w.grid.Size)
	stats := WorkerStats{Index: w.index, Computed: make([]int, 0, len(rows))}

	for _, row := range rows {
		attr := w.maps.AttractorRow(row)
		conv := w.maps.ConvergenceRow(row)
		re := w.grid.Real(row)
		for col := range attr {
			res := w.classifier.Classify(complex(re, w.grid.Imag(col)))
			attr[col] = res.Attractor
			conv[col] = res.Convergence
		}
		w.progress.MarkDone(row)
		stats.Computed = append(stats.Computed, row)
		stats.Rows++
	}

	stats.Busy = time.Since(start)
	return stats
}
