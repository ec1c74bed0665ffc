package metrics

import (
	"fmt"
	"time"

	"newton_fractal/render"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Report summarises one completed render.
type Report struct {
	RunID           string          `json:"run_id"`
	Degree          int             `json:"degree"`
	Size            int             `json:"size"`
	Threads         int             `json:"threads"`
	StartedAt       time.Time       `json:"started_at"`
	Duration        time.Duration   `json:"duration_ns"`
	MeanConvergence float64         `json:"mean_convergence"`
	SentinelShare   float64         `json:"sentinel_share"`
	Pixels          PixelStats      `json:"pixels"`
	Workers         []WorkerMetrics `json:"workers"`
}

// NewRunID returns a fresh identifier for a render run.
func NewRunID() string {
	return uuid.New().String()
}

// NewReport builds a Report from the render options, its result and the
// statistics gathered by the collector.
func NewReport(runID string, opts render.Options, startedAt time.Time, result *render.Result, stats PixelStats) Report {
	workers := make([]WorkerMetrics, len(result.Workers))
	for i, w := range result.Workers {
		workers[i] = WorkerMetrics{
			Index: w.Index,
			Rows:  w.Rows,
			Busy:  w.Busy,
		}
	}

	return Report{
		RunID:           runID,
		Degree:          opts.Degree,
		Size:            opts.Size,
		Threads:         opts.Threads,
		StartedAt:       startedAt.UTC(),
		Duration:        result.Duration,
		MeanConvergence: stats.MeanConvergence(),
		SentinelShare:   stats.SentinelShare(),
		Pixels:          stats,
		Workers:         workers,
	}
}

// JSON renders the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// AttractorHistogramJSON encodes only the per-class pixel counts, the form
// stored in the render history.
func (r Report) AttractorHistogramJSON() (string, error) {
	data, err := sonic.ConfigStd.Marshal(r.Pixels.Attractors)
	if err != nil {
		return "", fmt.Errorf("failed to encode attractor histogram: %w", err)
	}
	return string(data), nil
}

// ParseReport decodes a report produced by JSON.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if err := sonic.ConfigStd.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return r, nil
}

// ReportFileName returns the report name for a degree.
func ReportFileName(degree int) string {
	return fmt.Sprintf("newton_x%d_report.json", degree)
}
