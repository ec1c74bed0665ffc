package main

import (
	"context"

	"github.com/google/gops/agent"
	"go.uber.org/zap"

	"newton_fractal/core"
	"newton_fractal/logging"
)

// startDiagnostics starts the gops agent so a long render can be inspected
// with `gops stack`, `gops memstats` and friends. The returned function
// stops the agent.
func startDiagnostics(logger *logging.Logger) (core.ShutdownFunc, error) {
	if err := agent.Listen(agent.Options{ShutdownCleanup: false}); err != nil {
		return nil, err
	}
	logger.Info("Diagnostics agent listening", zap.String("tool", "gops"))

	return func(context.Context) error {
		agent.Close()
		return nil
	}, nil
}
