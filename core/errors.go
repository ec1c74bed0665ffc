package core

import (
	"errors"
	"fmt"
)

// ConfigError is a configuration fault with an instruction for fixing it.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable description
	Action  string // What the user should change
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeUnsupportedDegree   = "UNSUPPORTED_DEGREE"
	ErrCodeInvalidThreads      = "INVALID_THREADS"
	ErrCodeInvalidSize         = "INVALID_SIZE"
	ErrCodeMissingConfig       = "MISSING_CONFIG"
	ErrCodeOutputDirUnwritable = "OUTPUT_DIR_UNWRITABLE"
	ErrCodeInvalidConfigFile   = "INVALID_CONFIG_FILE"
	ErrCodeUnknownArgument     = "UNKNOWN_ARGUMENT"
)

// ErrUnsupportedDegree reports a degree outside the supported range.
func ErrUnsupportedDegree(value string, min, max int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnsupportedDegree,
		Message: fmt.Sprintf("Unsupported degree %q", value),
		Action:  fmt.Sprintf("Pass an integer degree between %d and %d as the last argument", min, max),
	}
}

// ErrInvalidThreads reports a thread count that is not a positive integer.
func ErrInvalidThreads(value string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidThreads,
		Message: fmt.Sprintf("Invalid thread count %q", value),
		Action:  "Use -t<N> or NEWTON_THREADS with N >= 1",
	}
}

// ErrInvalidSize reports an image size that is not an integer of at least 2.
func ErrInvalidSize(value string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidSize,
		Message: fmt.Sprintf("Invalid image size %q", value),
		Action:  "Use -l<S> or NEWTON_SIZE with S >= 2",
	}
}

// ErrMissingConfig reports a required value that no source supplied.
func ErrMissingConfig(name string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", name),
		Action:  "See usage for the accepted arguments",
	}
}

// ErrUnknownArgument reports a command-line argument that is not recognised.
func ErrUnknownArgument(arg string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownArgument,
		Message: fmt.Sprintf("Unknown argument %q", arg),
		Action:  "See usage for the accepted arguments",
	}
}

// ErrOutputDirUnwritable reports an output directory that cannot hold the images.
func ErrOutputDirUnwritable(dir string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeOutputDirUnwritable,
		Message: fmt.Sprintf("Cannot write to output directory %s: %s", dir, reason),
		Action:  "Set NEWTON_OUTPUT_DIR to a writable directory",
	}
}

// ErrInvalidConfigFile reports a YAML profile that cannot be read or parsed.
func ErrInvalidConfigFile(path string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidConfigFile,
		Message: fmt.Sprintf("Invalid config file %s: %s", path, reason),
		Action:  "Fix the YAML or unset NEWTON_CONFIG",
	}
}

// IsConfigError reports whether err wraps a ConfigError and returns it.
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode returns the ConfigError code carried by err, or "".
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}

// IsUsageError reports whether err should be answered with the usage text.
func IsUsageError(err error) bool {
	switch GetErrorCode(err) {
	case ErrCodeMissingConfig, ErrCodeUnknownArgument:
		return true
	}
	return false
}
