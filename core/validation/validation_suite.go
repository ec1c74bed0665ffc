// Package validation runs the startup checks for a render and prints their
// progress to the terminal.
package validation

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"newton_fractal/core"
)

// ValidationStep is one executed check.
type ValidationStep struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
	Latency time.Duration
}

// StepStatus is the state of a validation step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepPassed
	StepFailed
	StepWarning
	StepSkipped
)

// String returns the string representation of a step status.
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepRunning:
		return "running"
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepWarning:
		return "warning"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SuiteResult aggregates every step of one suite run.
type SuiteResult struct {
	Steps       []ValidationStep
	TotalSteps  int
	PassedSteps int
	FailedSteps int
	Warnings    int
	Duration    time.Duration
	Success     bool
}

// ValidationSuite checks a Config before any rendering starts: degree,
// worker count, image size, output directory, free disk space and the
// optional history database.
type ValidationSuite struct {
	output       io.Writer
	checker      *ConfigChecker
	historyDB    string
	showProgress bool
	failFast     bool
}

// NewValidationSuite creates a suite for cfg that prints to stdout.
func NewValidationSuite(cfg *core.Config) *ValidationSuite {
	return &ValidationSuite{
		output:       os.Stdout,
		checker:      NewConfigChecker(cfg),
		historyDB:    cfg.HistoryDB,
		showProgress: true,
	}
}

// WithOutput sets the writer for progress output.
func (s *ValidationSuite) WithOutput(w io.Writer) *ValidationSuite {
	s.output = w
	return s
}

// WithShowProgress enables or disables progress output.
func (s *ValidationSuite) WithShowProgress(show bool) *ValidationSuite {
	s.showProgress = show
	return s
}

// WithFailFast stops at the first failed step.
func (s *ValidationSuite) WithFailFast(failFast bool) *ValidationSuite {
	s.failFast = failFast
	return s
}

type check struct {
	name string
	fn   func() ValidationResult
	// skip returns a reason when the check should not run.
	skip func(done []ValidationStep) string
}

func (s *ValidationSuite) checks() []check {
	return []check{
		{name: "Polynomial Degree", fn: s.checker.CheckDegree},
		{name: "Thread Count", fn: s.checker.CheckThreads},
		{name: "Image Size", fn: s.checker.CheckSize},
		{name: "Output Directory", fn: s.checker.CheckOutputDir},
		{
			name: "Disk Space",
			fn:   s.checker.CheckDiskSpace,
			skip: func(done []ValidationStep) string {
				for _, step := range done {
					if (step.Name == "Image Size" || step.Name == "Output Directory") && step.Status == StepFailed {
						return "Skipped due to size or output directory errors"
					}
				}
				return ""
			},
		},
		{
			name: "History Database",
			fn:   s.checker.CheckHistoryDB,
			skip: func([]ValidationStep) string {
				if s.historyDB == "" {
					return "Disabled (NEWTON_HISTORY_DB not set)"
				}
				return ""
			},
		},
	}
}

// Validate runs every check in order and returns the aggregate result.
func (s *ValidationSuite) Validate() SuiteResult {
	startTime := time.Now()
	checks := s.checks()
	steps := make([]ValidationStep, 0, len(checks))

	if s.showProgress {
		s.printHeader("Newton Fractal Render Check")
	}

	for _, c := range checks {
		var step ValidationStep
		if reason := skipReason(c, steps); reason != "" {
			step = ValidationStep{Name: c.name, Status: StepSkipped, Message: reason}
			if s.showProgress {
				s.printStep(step)
			}
		} else {
			step = s.runStep(c.name, c.fn)
		}
		steps = append(steps, step)
		if s.failFast && step.Status == StepFailed {
			break
		}
	}

	result := s.buildResult(steps, startTime)
	if s.showProgress {
		s.printSummary(result)
	}
	return result
}

func skipReason(c check, done []ValidationStep) string {
	if c.skip == nil {
		return ""
	}
	return c.skip(done)
}

// runStep executes one check with timing and progress output.
func (s *ValidationSuite) runStep(name string, fn func() ValidationResult) ValidationStep {
	step := ValidationStep{Name: name, Status: StepRunning}

	if s.showProgress {
		s.printStepStart(name)
	}

	startTime := time.Now()
	res := fn()
	step.Latency = time.Since(startTime)
	step.Message = res.Message
	step.Error = res.Error

	switch {
	case !res.Valid:
		step.Status = StepFailed
	case res.Warning:
		step.Status = StepWarning
	default:
		step.Status = StepPassed
	}

	if s.showProgress {
		s.printStep(step)
	}
	return step
}

// buildResult counts step outcomes. Warnings do not fail the suite.
func (s *ValidationSuite) buildResult(steps []ValidationStep, startTime time.Time) SuiteResult {
	result := SuiteResult{
		Steps:      steps,
		TotalSteps: len(steps),
		Duration:   time.Since(startTime),
		Success:    true,
	}

	for _, step := range steps {
		switch step.Status {
		case StepPassed:
			result.PassedSteps++
		case StepFailed:
			result.FailedSteps++
			result.Success = false
		case StepWarning:
			result.Warnings++
		}
	}
	return result
}

func (s *ValidationSuite) printHeader(title string) {
	fmt.Fprintln(s.output)
	color.New(color.FgCyan, color.Bold).Fprintf(s.output, "━━━ %s ━━━\n", title)
	fmt.Fprintln(s.output)
}

func (s *ValidationSuite) printStepStart(name string) {
	fmt.Fprintf(s.output, "  ◌ %s...", name)
}

func (s *ValidationSuite) printStep(step ValidationStep) {
	var icon string
	var clr *color.Color

	switch step.Status {
	case StepPassed:
		icon, clr = "✓", color.New(color.FgGreen)
	case StepFailed:
		icon, clr = "✗", color.New(color.FgRed)
	case StepWarning:
		icon, clr = "!", color.New(color.FgYellow)
	case StepSkipped:
		icon, clr = "○", color.New(color.FgHiBlack)
	default:
		icon, clr = "?", color.New(color.FgWhite)
	}

	// \r overwrites the "running" line
	fmt.Fprintf(s.output, "\r")
	clr.Fprintf(s.output, "  %s %s", icon, step.Name)
	if step.Message != "" {
		color.New(color.FgHiBlack).Fprintf(s.output, " - %s", step.Message)
	}
	fmt.Fprintln(s.output)

	if step.Status == StepFailed && step.Error != nil {
		color.New(color.FgRed).Fprintf(s.output, "    └─ %s\n", step.Error.Error())
	}
}

func (s *ValidationSuite) printSummary(result SuiteResult) {
	fmt.Fprintln(s.output)

	if result.Success {
		ok := color.New(color.FgGreen, color.Bold)
		ok.Fprintf(s.output, "━━━ Ready to Render ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d/%d checks passed in %v)",
			result.PassedSteps, result.TotalSteps, result.Duration.Round(time.Millisecond))
		ok.Fprintln(s.output, " ━━━")
	} else {
		fail := color.New(color.FgRed, color.Bold)
		fail.Fprintf(s.output, "━━━ Validation Failed ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d passed, %d failed)",
			result.PassedSteps, result.FailedSteps)
		fail.Fprintln(s.output, " ━━━")
	}

	fmt.Fprintln(s.output)
}

// FirstError returns the error of the first failed step, or nil.
func (r SuiteResult) FirstError() error {
	for _, step := range r.Steps {
		if step.Status == StepFailed && step.Error != nil {
			return step.Error
		}
	}
	return nil
}

// Summary returns a one-line description of the result for logging.
func (r SuiteResult) Summary() string {
	var sb strings.Builder
	if r.Success {
		sb.WriteString("Validation passed: ")
	} else {
		sb.WriteString("Validation failed: ")
	}
	fmt.Fprintf(&sb, "%d/%d checks passed", r.PassedSteps, r.TotalSteps)
	if r.FailedSteps > 0 {
		fmt.Fprintf(&sb, ", %d failed", r.FailedSteps)
	}
	if r.Warnings > 0 {
		fmt.Fprintf(&sb, ", %d warnings", r.Warnings)
	}
	return sb.String()
}
