package db

import (
	"context"
	"fmt"
	"time"
)

// PruneResult reports what PruneRuns removed.
type PruneResult struct {
	RunsDeleted int64
	Duration    time.Duration
}

// PruneRuns deletes runs created more than retentionDays before now.
// A retentionDays of 0 keeps everything.
//
// Example:
//
//	result, err := database.PruneRuns(ctx, 30, time.Now())
//	if err != nil {
//	    return err
//	}
//	logger.Info("pruned history", zap.Int64("deleted", result.RunsDeleted))
func (d *Database) PruneRuns(ctx context.Context, retentionDays int, now time.Time) (PruneResult, error) {
	start := time.Now()
	var result PruneResult

	if retentionDays < 0 {
		return result, fmt.Errorf("retentionDays must be non-negative, got %d", retentionDays)
	}
	if retentionDays == 0 {
		return result, nil
	}

	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	res, err := d.ExecContext(ctx, `DELETE FROM render_runs WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return result, fmt.Errorf("failed to prune render runs: %w", err)
	}

	result.RunsDeleted, err = res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	result.Duration = time.Since(start)
	return result, nil
}
