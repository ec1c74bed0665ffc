package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"newton_fractal/newton"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidThreads is returned for a worker count below one.
var ErrInvalidThreads = errors.New("render: thread count must be at least 1")

// Options configures one render.
type Options struct {
	// Degree of f(z) = z^d - 1, in [newton.MinDegree, newton.MaxDegree].
	Degree int

	// Size is the edge length of both images in pixels.
	Size int

	// Threads is the number of compute workers.
	Threads int

	// Observer, if set, sees every row after the writer has emitted it.
	Observer RowObserver
}

// Result is returned once every worker and the writer have finished.
type Result struct {
	Maps     *Maps
	Workers  []WorkerStats
	Duration time.Duration
}

// Renderer owns the validated configuration for a render. A Renderer holds
// no per-run state and can be reused.
type Renderer struct {
	opts       Options
	grid       newton.Grid
	classifier *newton.Classifier
	logger     *zap.Logger
}

// New validates opts and returns a Renderer. Every configuration error is
// reported here, before any goroutine is started.
func New(opts Options, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	classifier, err := newton.NewClassifier(opts.Degree)
	if err != nil {
		return nil, err
	}
	grid, err := newton.NewGrid(opts.Size)
	if err != nil {
		return nil, err
	}
	if opts.Threads < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreads, opts.Threads)
	}

	return &Renderer{
		opts:       opts,
		grid:       grid,
		classifier: classifier,
		logger:     logger,
	}, nil
}

// Options returns the configuration the Renderer was built with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render computes both maps with Threads workers while a single writer
// streams them to attrOut and convOut. It returns after all goroutines
// have joined. There is no cancellation: a render either completes or
// fails on a write error.
func (r *Renderer) Render(attrOut, convOut io.Writer) (*Result, error) {
	start := time.Now()
	size, threads := r.opts.Size, r.opts.Threads

	maps := NewMaps(size)
	progress := NewRowProgress(size)
	stats := make([]WorkerStats, threads)

	r.logger.Info("Starting render",
		zap.Int("degree", r.opts.Degree),
		zap.Int("size", size),
		zap.Int("threads", threads),
	)

	var g errgroup.Group
	for t := 0; t < threads; t++ {
		w := &worker{
			index:      t,
			count:      threads,
			grid:       r.grid,
			classifier: r.classifier,
			maps:       maps,
			progress:   progress,
		}
		g.Go(func() error {
			stats[w.index] = w.run()
			r.logger.Debug("Worker finished",
				zap.Int("worker", w.index),
				zap.Int("rows", stats[w.index].Rows),
				zap.Duration("busy", stats[w.index].Busy),
			)
			return nil
		})
	}

	writer := NewImageWriter(attrOut, convOut, maps, progress, r.opts.Observer)
	g.Go(writer.Run)

	if err := g.Wait(); err != nil {
		r.logger.Error("Render failed", zap.Error(err))
		return nil, err
	}

	result := &Result{
		Maps:     maps,
		Workers:  stats,
		Duration: time.Since(start),
	}
	r.logger.Info("Render complete",
		zap.Int("rows", progress.Completed()),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}
