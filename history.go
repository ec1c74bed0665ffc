package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"newton_fractal/core"
	"newton_fractal/db"
	"newton_fractal/logging"
	"newton_fractal/metrics"
)

// history wraps the optional render history store. A nil *history is a
// disabled store and every method is a no-op.
type history struct {
	database *db.Database
	repo     *db.Repository
	keepDays int
	logger   *logging.Logger
}

// openHistory opens and migrates the store at path. An empty path disables it.
func openHistory(path string, keepDays int, logger *logging.Logger) (*history, error) {
	if path == "" {
		return nil, nil
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		if closeErr := database.Close(); closeErr != nil {
			logger.Warn("Failed to close history database", logging.Path(path), zap.Error(closeErr))
		}
		return nil, err
	}

	return &history{
		database: database,
		repo:     db.NewRepository(database),
		keepDays: keepDays,
		logger:   logger.Named("history"),
	}, nil
}

func (h *history) close(context.Context) error {
	if h == nil {
		return nil
	}
	return h.database.Close()
}

// logPrevious reports the last run with the same degree and size, if any.
func (h *history) logPrevious(ctx context.Context, degree, size int) {
	if h == nil {
		return
	}
	prev, err := h.repo.LastRun(ctx, degree, size)
	switch {
	case errors.Is(err, db.ErrNotFound):
		h.logger.Debug("No previous run for this geometry", logging.Degree(degree), logging.ImageSize(size))
	case err != nil:
		h.logger.Warn("Failed to read previous run", zap.Error(err))
	default:
		h.logger.Info("Previous run",
			zap.String("previous_run_id", prev.RunID),
			logging.Threads(prev.Threads),
			zap.String("previous_elapsed", core.FormatDuration(time.Duration(prev.DurationMS)*time.Millisecond)),
			zap.Time("previous_at", prev.CreatedAt),
		)
	}
}

// record stores report and prunes old runs.
func (h *history) record(ctx context.Context, report metrics.Report) error {
	if h == nil {
		return nil
	}

	histogram, err := report.AttractorHistogramJSON()
	if err != nil {
		return err
	}

	id, err := h.repo.InsertRun(ctx, db.RenderRun{
		RunID:              report.RunID,
		Degree:             report.Degree,
		Size:               report.Size,
		Threads:            report.Threads,
		DurationMS:         report.Duration.Milliseconds(),
		AttractorHistogram: histogram,
		MeanConvergence:    report.MeanConvergence,
		CreatedAt:          report.StartedAt,
	})
	if err != nil {
		return err
	}
	h.logger.Debug("Run recorded", zap.Int64("row_id", id))

	pruned, err := h.database.PruneRuns(ctx, h.keepDays, time.Now())
	if err != nil {
		h.logger.Warn("Failed to prune history", zap.Error(err))
		return nil
	}
	if pruned.RunsDeleted > 0 {
		h.logger.Info("Pruned old runs",
			zap.Int64("deleted", pruned.RunsDeleted),
			zap.Int("retention_days", h.keepDays),
		)
	}
	return nil
}
