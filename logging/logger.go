// Package logging provides the structured logger used across the renderer.
//
// The Logger organism composes:
//   - FileWriter molecule (rotating JSON log file via lumberjack)
//   - MultiCore molecule (tee to console and file)
//   - encoder config atoms (field names, time and level encoders)
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogFile is the log file used when none is configured.
const DefaultLogFile = "newton.log"

// Config selects the console format, the minimum level and the log file.
type Config struct {
	// Development switches the console to a coloured, human-readable format.
	Development bool

	// Level is the minimum level written to either output.
	Level zapcore.Level

	// FilePath is the JSON log file. Empty disables file output.
	FilePath string

	// File configures rotation of FilePath.
	File FileWriterConfig

	// Console receives console output. Defaults to os.Stderr so that
	// stdout stays free for command output.
	Console io.Writer
}

// DefaultConfig returns production settings: JSON console at info level
// plus DefaultLogFile with default rotation.
func DefaultConfig() Config {
	return Config{
		Development: false,
		Level:       zapcore.InfoLevel,
		FilePath:    DefaultLogFile,
		File:        DefaultFileWriterConfig(),
	}
}

// Logger wraps zap.Logger together with its sugared form.
//
// Example:
//
//	logger, err := NewLogger(true, "newton.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("render started", zap.Int("degree", 5))
type Logger struct {
	zap           *zap.Logger
	sugar         *zap.SugaredLogger
	isDevelopment bool
	logFilePath   string
}

// NewLogger creates a Logger for the given mode writing to logFilePath.
// Development mode logs at debug level, production at info level.
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	cfg := DefaultConfig()
	cfg.Development = isDevelopment
	cfg.FilePath = logFilePath
	if isDevelopment {
		cfg.Level = zapcore.DebugLevel
	}
	return New(cfg)
}

// New creates a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	var fileWriter zapcore.WriteSyncer
	if cfg.FilePath != "" {
		if err := checkWritable(cfg.FilePath); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fileWriter = NewFileWriterWithConfig(cfg.FilePath, cfg.File)
	}

	core := NewMultiCore(cfg.Level, zapcore.AddSync(console), fileWriter, cfg.Development)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{
		zap:           zapLogger,
		sugar:         zapLogger.Sugar(),
		isDevelopment: cfg.Development,
		logFilePath:   cfg.FilePath,
	}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	z := zap.NewNop()
	return &Logger{zap: z, sugar: z.Sugar()}
}

// FromZap wraps an existing zap.Logger, typically one built on an
// observer core in tests.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z, sugar: z.Sugar()}
}

// checkWritable opens path for appending, creating it if needed, so that
// a bad log location is reported at startup rather than on first write.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Sync flushes buffered entries. Call it before exiting.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Debug logs at DebugLevel.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info logs at InfoLevel.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs at WarnLevel.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs at ErrorLevel.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// Fatal logs at FatalLevel and exits with status 1.
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, fields...)
}

// Infow logs at InfoLevel with loosely-typed key-value pairs.
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warnw logs at WarnLevel with loosely-typed key-value pairs.
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Errorw logs at ErrorLevel with loosely-typed key-value pairs.
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Infof logs a formatted message at InfoLevel.
func (l *Logger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}

// Errorf logs a formatted message at ErrorLevel.
func (l *Logger) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}

// With returns a child logger that adds fields to every entry.
//
// Example:
//
//	runLogger := logger.With(logging.RunID(id))
//	runLogger.Info("render complete")
func (l *Logger) With(fields ...zap.Field) *Logger {
	z := l.zap.With(fields...)
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Named adds a sub-logger name, shown in the "source" field.
func (l *Logger) Named(name string) *Logger {
	z := l.zap.Named(name)
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Zap returns the underlying zap.Logger, for packages that take one.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// IsDevelopment reports whether the logger runs in development mode.
func (l *Logger) IsDevelopment() bool {
	return l.isDevelopment
}

// LogFilePath returns the log file path, empty when file output is off.
func (l *Logger) LogFilePath() string {
	return l.logFilePath
}
