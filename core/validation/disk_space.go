package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"newton_fractal/core"
)

// DiskSpaceError reports a filesystem without room for the outputs.
type DiskSpaceError struct {
	Path      string
	Required  int64
	Available int64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space at %s: need %s, have %s free",
		e.Path, core.FormatBytes(e.Required), core.FormatBytes(e.Available))
}

// FreeSpace returns the bytes available to the current user on the
// filesystem holding path. A path that does not exist yet is resolved to
// its nearest existing ancestor.
func FreeSpace(path string) (int64, error) {
	dir, err := existingAncestor(path)
	if err != nil {
		return 0, err
	}
	_, free, err := getDiskSpace(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to get disk space for %s: %w", dir, err)
	}
	return free, nil
}

// CheckDiskSpace returns a *DiskSpaceError when path's filesystem has
// fewer than required free bytes.
func CheckDiskSpace(path string, required int64) error {
	free, err := FreeSpace(path)
	if err != nil {
		return err
	}
	if free < required {
		return &DiskSpaceError{Path: path, Required: required, Available: free}
	}
	return nil
}

func existingAncestor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		info, err := os.Stat(abs)
		if err == nil {
			if info.IsDir() {
				return abs, nil
			}
			return filepath.Dir(abs), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("cannot access path %s: %w", abs, err)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		abs = parent
	}
}
