package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no history row matches a lookup.
var ErrNotFound = errors.New("render run not found")

// RenderRun is one row of the render_runs table.
type RenderRun struct {
	ID                 int64     // Auto-incremented primary key
	RunID              string    // UUID shared with the log and the JSON report
	Degree             int       // Polynomial degree
	Size               int       // Image side length in pixels
	Threads            int       // Worker count
	DurationMS         int64     // Wall time of the render
	AttractorHistogram string    // JSON array of per-class pixel counts
	MeanConvergence    float64   // Mean clamped iteration count
	CreatedAt          time.Time // Stored as Unix milliseconds
}

// Repository reads and writes render history.
type Repository struct {
	db *Database
}

// NewRepository creates a Repository on db.
func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

const runColumns = `id, run_id, degree, size, threads, duration_ms,
	attractor_histogram, mean_convergence, created_at`

// InsertRun stores run and returns its row id. A zero CreatedAt is
// replaced by the current time.
func (r *Repository) InsertRun(ctx context.Context, run RenderRun) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	if run.RunID == "" {
		return 0, fmt.Errorf("run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO render_runs (
			run_id, degree, size, threads, duration_ms,
			attractor_histogram, mean_convergence, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Degree, run.Size, run.Threads, run.DurationMS,
		run.AttractorHistogram, run.MeanConvergence, run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert render run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// LastRun returns the most recent run with the given degree and size, or
// ErrNotFound.
func (r *Repository) LastRun(ctx context.Context, degree, size int) (*RenderRun, error) {
	runs, err := r.queryRuns(ctx, `SELECT `+runColumns+` FROM render_runs
		WHERE degree = ? AND size = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, degree, size)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// RecentRuns returns up to limit runs, newest first. A non-positive limit
// means 10.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]RenderRun, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.queryRuns(ctx, `SELECT `+runColumns+` FROM render_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
}

// CountRuns returns the number of stored runs.
func (r *Repository) CountRuns(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	rows, err := r.db.QueryContext(ctx, `SELECT COUNT(*) FROM render_runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to count render runs: %w", err)
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	return n, rows.Err()
}

func (r *Repository) queryRuns(ctx context.Context, query string, args ...interface{}) ([]RenderRun, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer rows.Close()

	var runs []RenderRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (RenderRun, error) {
	var run RenderRun
	var createdMS int64
	err := rows.Scan(
		&run.ID, &run.RunID, &run.Degree, &run.Size, &run.Threads, &run.DurationMS,
		&run.AttractorHistogram, &run.MeanConvergence, &createdMS,
	)
	if err != nil {
		return RenderRun{}, fmt.Errorf("failed to scan render run: %w", err)
	}
	run.CreatedAt = time.UnixMilli(createdMS)
	return run, nil
}
