package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"newton_fractal/core"
	"newton_fractal/logging"
	"newton_fractal/metrics"
	"newton_fractal/preview"
	"newton_fractal/render"
	"newton_fractal/shutdown"
)

// renderFractal runs one render described by cfg and writes the images,
// the JSON report, the optional preview and the history row.
func renderFractal(cfg *core.Config, logger *logging.Logger, manager *shutdown.Manager) error {
	ctx := context.Background()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runID := metrics.NewRunID()
	runLogger := logger.With(logging.RunID(runID))

	store, err := openHistory(cfg.HistoryDB, cfg.HistoryDays, runLogger)
	if err != nil {
		return fmt.Errorf("open render history: %w", err)
	}
	manager.Register("history database", shutdown.PriorityDatabase, store.close)
	store.logPrevious(ctx, cfg.Degree, cfg.Size)

	attrPath, convPath := render.OutputPaths(cfg.OutputDir, cfg.Degree)
	attrOut, err := createOutput(attrPath)
	if err != nil {
		return err
	}
	manager.Register("flush attractor image", shutdown.PriorityFlush, attrOut.flush)
	manager.Register("close attractor image", shutdown.PriorityFiles, attrOut.close)

	convOut, err := createOutput(convPath)
	if err != nil {
		return err
	}
	manager.Register("flush convergence image", shutdown.PriorityFlush, convOut.flush)
	manager.Register("close convergence image", shutdown.PriorityFiles, convOut.close)

	collector := metrics.NewCollector()
	opts := render.Options{
		Degree:   cfg.Degree,
		Size:     cfg.Size,
		Threads:  cfg.Threads,
		Observer: collector,
	}
	renderer, err := render.New(opts, runLogger.Zap())
	if err != nil {
		return err
	}

	startedAt := time.Now()
	result, err := renderer.Render(attrOut, convOut)
	if err != nil {
		return err
	}

	for _, out := range []*outputFile{attrOut, convOut} {
		if err := out.Close(); err != nil {
			return err
		}
		runLogger.Debug("Image written", logging.Path(out.path))
	}

	stats := collector.Snapshot()
	report := metrics.NewReport(runID, renderer.Options(), startedAt, result, stats)
	if err := writeReport(cfg.OutputDir, report); err != nil {
		return err
	}

	if cfg.PreviewSize > 0 {
		previewPath := preview.FileName(attrPath)
		if err := preview.WriteFile(previewPath, result.Maps, cfg.PreviewSize); err != nil {
			runLogger.Warn("Preview not written", logging.Path(previewPath), zap.Error(err))
		} else {
			runLogger.Debug("Preview written", logging.Path(previewPath))
		}
	}

	if err := store.record(ctx, report); err != nil {
		runLogger.Warn("Run not recorded in history", zap.Error(err))
	}

	runLogger.Info("Render finished",
		logging.Summary(logging.RenderSummary{
			Degree:          cfg.Degree,
			Size:            cfg.Size,
			Threads:         cfg.Threads,
			Duration:        result.Duration,
			MeanConvergence: report.MeanConvergence,
			SentinelShare:   report.SentinelShare,
		}),
		zap.String("elapsed", core.FormatDuration(result.Duration)),
		zap.String("attractors", attrPath),
		zap.String("convergence", convPath),
	)
	return nil
}

func writeReport(dir string, report metrics.Report) error {
	data, err := report.JSON()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, metrics.ReportFileName(report.Degree))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
