package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys for render-related log entries.
const (
	KeyRunID      = "run_id"
	KeyDegree     = "degree"
	KeyImageSize  = "image_size"
	KeyThreads    = "threads"
	KeyPath       = "path"
	KeyRender     = "render"
	KeyDurationMS = "duration_ms"
)

// RunID tags an entry with the run identifier.
func RunID(id string) zap.Field {
	return zap.String(KeyRunID, id)
}

// Degree tags an entry with the polynomial degree.
func Degree(d int) zap.Field {
	return zap.Int(KeyDegree, d)
}

// ImageSize tags an entry with the image side length in pixels.
func ImageSize(size int) zap.Field {
	return zap.Int(KeyImageSize, size)
}

// Threads tags an entry with the worker count.
func Threads(n int) zap.Field {
	return zap.Int(KeyThreads, n)
}

// Path tags an entry with a file path.
func Path(p string) zap.Field {
	return zap.String(KeyPath, p)
}

// RenderParams returns the degree, size and thread fields together.
func RenderParams(degree, size, threads int) []zap.Field {
	return []zap.Field{Degree(degree), ImageSize(size), Threads(threads)}
}

// RenderSummary is the log view of a finished render.
type RenderSummary struct {
	Degree          int
	Size            int
	Threads         int
	Duration        time.Duration
	MeanConvergence float64
	SentinelShare   float64
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s RenderSummary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt(KeyDegree, s.Degree)
	enc.AddInt(KeyImageSize, s.Size)
	enc.AddInt(KeyThreads, s.Threads)
	enc.AddInt64(KeyDurationMS, s.Duration.Milliseconds())
	enc.AddFloat64("mean_convergence", s.MeanConvergence)
	enc.AddFloat64("sentinel_share", s.SentinelShare)
	return nil
}

// Summary nests a RenderSummary under the "render" key.
func Summary(s RenderSummary) zap.Field {
	return zap.Object(KeyRender, s)
}
