package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"newton_fractal/core"
	"newton_fractal/render"
)

// ValidationResult is the outcome of one check. Warning marks a passing
// check that the user should still hear about.
type ValidationResult struct {
	Valid   bool
	Warning bool
	Message string
	Error   error
}

// ConfigChecker runs the individual checks against one Config.
type ConfigChecker struct {
	cfg *core.Config
}

// NewConfigChecker creates a ConfigChecker for cfg.
func NewConfigChecker(cfg *core.Config) *ConfigChecker {
	return &ConfigChecker{cfg: cfg}
}

// CheckDegree validates the polynomial degree.
func (c *ConfigChecker) CheckDegree() ValidationResult {
	if err := core.ValidateDegree(c.cfg.Degree); err != nil {
		return ValidationResult{
			Message: fmt.Sprintf("Degree must be between %d and %d", core.MinDegree, core.MaxDegree),
			Error:   err,
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("z^%d - 1 (%d roots)", c.cfg.Degree, c.cfg.Degree),
	}
}

// CheckThreads validates the worker count. More workers than rows is
// allowed but leaves some idle.
func (c *ConfigChecker) CheckThreads() ValidationResult {
	if err := core.ValidateThreads(c.cfg.Threads); err != nil {
		return ValidationResult{
			Message: "At least one worker is required",
			Error:   err,
		}
	}
	if c.cfg.Size >= core.MinSize && c.cfg.Threads > c.cfg.Size {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("%d workers for %d rows, %d will be idle", c.cfg.Threads, c.cfg.Size, c.cfg.Threads-c.cfg.Size),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("%d workers", c.cfg.Threads),
	}
}

// CheckSize validates the image and preview sizes.
func (c *ConfigChecker) CheckSize() ValidationResult {
	if err := core.ValidateSize(c.cfg.Size); err != nil {
		return ValidationResult{
			Message: fmt.Sprintf("Image size must be at least %d pixels", core.MinSize),
			Error:   err,
		}
	}
	if c.cfg.PreviewSize < 0 {
		return ValidationResult{
			Message: "Preview size must not be negative",
			Error:   core.ErrInvalidSize(fmt.Sprint(c.cfg.PreviewSize)),
		}
	}
	return ValidationResult{
		Valid: true,
		Message: fmt.Sprintf("%dx%d, %s per image", c.cfg.Size, c.cfg.Size,
			core.FormatBytes(ImageBytes(c.cfg.Size))),
	}
}

// CheckOutputDir verifies that the output directory is writable, or that
// it does not exist yet and will be created.
func (c *ConfigChecker) CheckOutputDir() ValidationResult {
	dir := c.cfg.OutputDir
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("%s does not exist and will be created", dir),
		}
	}
	if err != nil {
		return ValidationResult{Message: "Output directory not accessible", Error: core.ErrOutputDirUnwritable(dir, err.Error())}
	}
	if !info.IsDir() {
		return ValidationResult{Message: "Output path is not a directory", Error: core.ErrOutputDirUnwritable(dir, "not a directory")}
	}

	testFile, err := os.CreateTemp(dir, ".newton-write-test-*")
	if err != nil {
		return ValidationResult{Message: "Output directory not writable", Error: core.ErrOutputDirUnwritable(dir, err.Error())}
	}
	closeErr := testFile.Close()
	removeErr := os.Remove(testFile.Name())
	if closeErr != nil {
		return ValidationResult{Message: "Output directory not writable", Error: core.ErrOutputDirUnwritable(dir, closeErr.Error())}
	}
	if removeErr != nil {
		return ValidationResult{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("could not remove write test file: %v", removeErr),
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return ValidationResult{Valid: true, Message: abs}
}

// CheckDiskSpace verifies room for both images in the output directory.
func (c *ConfigChecker) CheckDiskSpace() ValidationResult {
	required := 2 * ImageBytes(c.cfg.Size)
	if err := CheckDiskSpace(c.cfg.OutputDir, required); err != nil {
		return ValidationResult{Message: "Not enough free space for the images", Error: err}
	}
	return ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("%s required", core.FormatBytes(required)),
	}
}

// CheckHistoryDB verifies that the history database location is usable.
// The caller skips this check when the history store is disabled.
func (c *ConfigChecker) CheckHistoryDB() ValidationResult {
	path := c.cfg.HistoryDB
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return ValidationResult{Message: "History path is a directory", Error: fmt.Errorf("%s is a directory", path)}
	case err == nil:
		return ValidationResult{Valid: true, Message: path}
	case !os.IsNotExist(err):
		return ValidationResult{Message: "History database not accessible", Error: err}
	}
	return ValidationResult{
		Valid:   true,
		Warning: true,
		Message: fmt.Sprintf("%s will be created", path),
	}
}

// ImageBytes is the size in bytes of one PPM output for a size x size image.
func ImageBytes(size int) int64 {
	if size < 1 {
		return 0
	}
	return int64(len(render.Header(size))) + int64(size)*int64(render.RowBytes(size))
}
