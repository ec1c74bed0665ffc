// Command newton renders the Newton fractal of z^d - 1 into two PPM images:
// the attractor each pixel converges to and how fast it gets there.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"newton_fractal/core"
	"newton_fractal/core/validation"
	"newton_fractal/logging"
	"newton_fractal/shutdown"
)

const programName = "newton"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// A missing .env is normal; a broken one is worth mentioning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg, err := core.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		if core.IsUsageError(err) {
			core.WriteUsage(stderr, programName)
		}
		return core.ExitCodeError
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer func() {
		// Sync on a terminal returns EINVAL; nothing useful to report.
		_ = logger.Sync()
	}()

	manager := shutdown.NewManager(logger.Zap())
	manager.OnAbort("logger", shutdown.PriorityLogger, func(context.Context) error {
		return logger.Sync()
	})
	manager.Start()
	defer manager.Stop()

	logger.Info("Configuration loaded", append(
		logging.RenderParams(cfg.Degree, cfg.Size, cfg.Threads),
		zap.String("version", core.VersionString()),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("history_db", cfg.HistoryDB),
		zap.Int("preview_size", cfg.PreviewSize),
		zap.String("profile", cfg.ProfilePath),
		zap.Bool("dev_mode", cfg.DevMode),
	)...)

	if code := runStartupValidation(cfg, logger, stdout); code != core.ExitCodeSuccess {
		return code
	}

	if cfg.EnableGops {
		stop, err := startDiagnostics(logger)
		if err != nil {
			logger.Warn("Diagnostics agent not started", zap.Error(err))
		} else {
			manager.Register("diagnostics", shutdown.PriorityFiles, stop)
		}
	}

	renderErr := renderFractal(cfg, logger, manager)
	shutdownErr := manager.Shutdown()

	if renderErr != nil {
		logger.Error("Render failed", zap.Error(renderErr))
		return core.ExitCodeError
	}
	if shutdownErr != nil {
		logger.Error("Cleanup failed", zap.Error(shutdownErr))
		return core.ExitCodeError
	}
	return core.ExitCodeSuccess
}

// newLogger builds the logger from cfg. An explicit NEWTON_LOG_LEVEL wins;
// otherwise development mode logs at debug and production at info.
func newLogger(cfg *core.Config, console io.Writer) (*logging.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.DevMode {
		level = zapcore.DebugLevel
	}
	if cfg.LogLevel != "" {
		parsed, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	return logging.New(logging.Config{
		Development: cfg.DevMode,
		Level:       level,
		FilePath:    cfg.LogFile,
		File:        logging.DefaultFileWriterConfig(),
		Console:     console,
	})
}

// runStartupValidation checks cfg before any file is created and returns
// the exit code to use.
func runStartupValidation(cfg *core.Config, logger *logging.Logger, out io.Writer) int {
	result := validation.NewValidationSuite(cfg).
		WithOutput(out).
		WithShowProgress(cfg.ShowValidation).
		Validate()

	if !result.Success {
		logger.Error("Configuration validation failed",
			zap.Int("passed", result.PassedSteps),
			zap.Int("failed", result.FailedSteps),
			zap.Duration("duration", result.Duration),
		)
		for _, step := range result.Steps {
			if step.Status == validation.StepFailed {
				logger.Error("Validation step failed",
					zap.String("step", step.Name),
					zap.String("message", step.Message),
					zap.Error(step.Error),
				)
			}
		}
		return core.ExitCodeError
	}

	for _, step := range result.Steps {
		if step.Status == validation.StepWarning {
			logger.Warn("Validation warning",
				zap.String("step", step.Name),
				zap.String("message", step.Message),
			)
		}
	}
	logger.Debug(result.Summary(), zap.Duration("duration", result.Duration))
	return core.ExitCodeSuccess
}
