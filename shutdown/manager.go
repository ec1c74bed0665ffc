package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"newton_fractal/core"
)

// Manager owns two registries: cleanup that runs at the end of a normal
// run, and abort hooks that run before the process exits on a signal.
//
// A render is not interruptible part way: SIGINT or SIGTERM runs the abort
// hooks (typically a logger sync) and exits with 130 or 143. No output is
// finalised.
//
// Usage:
//
//	manager := NewManager(logger)
//	manager.OnAbort("logger", PriorityLogger, func(context.Context) error { return logger.Sync() })
//	manager.Register("history", PriorityDatabase, func(context.Context) error { return database.Close() })
//	manager.Start()
//	defer manager.Stop()
//
//	// ... render ...
//
//	if err := manager.Shutdown(); err != nil {
//	    ...
//	}
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration
	exit    func(code int)

	cleanup *Registry
	abort   *Registry

	mu      sync.Mutex
	started bool
	sigChan chan os.Signal
	done    chan struct{}
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeout bounds the time given to cleanup and abort hooks.
// Default is 10 seconds.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithExitFunc replaces os.Exit, for tests.
func WithExitFunc(exit func(code int)) ManagerOption {
	return func(m *Manager) {
		m.exit = exit
	}
}

// NewManager creates a Manager. A nil logger discards output.
func NewManager(logger *zap.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		logger:  logger,
		timeout: 10 * time.Second,
		exit:    os.Exit,
		cleanup: NewRegistry(),
		abort:   NewRegistry(),
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a cleanup function run by Shutdown.
func (m *Manager) Register(name string, priority int, fn core.ShutdownFunc) {
	m.cleanup.Register(name, priority, fn)
	m.logger.Debug("Registered cleanup handler",
		zap.String("name", name),
		zap.Int("priority", priority),
	)
}

// OnAbort adds a hook run before the process exits on a signal.
func (m *Manager) OnAbort(name string, priority int, fn core.ShutdownFunc) {
	m.abort.Register(name, priority, fn)
}

// Start installs the SIGINT and SIGTERM handler. Calling it again is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go m.watch(m.done)
}

func (m *Manager) watch(done <-chan struct{}) {
	select {
	case sig := <-m.sigChan:
		m.Abort(sig)
	case <-done:
	}
}

// Abort runs the abort hooks and exits with the code for sig.
func (m *Manager) Abort(sig os.Signal) {
	code := core.ExitCodeForSignal(sig)
	m.logger.Warn("Received signal, aborting",
		zap.String("signal", sig.String()),
		zap.Int("exit_code", code),
		zap.String("exit", core.ExitCodeName(code)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	for _, err := range m.abort.Run(ctx) {
		fmt.Fprintf(os.Stderr, "abort hook failed: %v\n", err)
	}
	cancel()

	m.exit(code)
}

// Stop removes the signal handler. Calling it more than once is safe.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}
	m.started = false
	signal.Stop(m.sigChan)
	close(m.done)
	m.done = make(chan struct{})
}

// Shutdown runs the cleanup functions in priority order and reports
// whether any failed. Only the first call does anything.
func (m *Manager) Shutdown() error {
	start := time.Now()
	m.logger.Debug("Running cleanup handlers",
		zap.Int("count", m.cleanup.Count()),
		zap.Strings("handlers", m.CleanupHandlers()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	errs := m.cleanup.Run(ctx)
	for _, err := range errs {
		m.logger.Error("Cleanup handler failed", zap.Error(err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("cleanup had %d errors, first: %w", len(errs), errs[0])
	}

	m.logger.Debug("Cleanup complete", zap.Duration("duration", time.Since(start)))
	return nil
}

// CleanupHandlers returns the cleanup names in execution order.
func (m *Manager) CleanupHandlers() []string {
	return m.cleanup.Names()
}
