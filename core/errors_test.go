package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	err := ErrInvalidThreads("0")
	msg := err.Error()
	if !strings.Contains(msg, `Invalid thread count "0"`) || !strings.Contains(msg, "N >= 1") {
		t.Errorf("Error() = %q, want message and action", msg)
	}

	bare := &ConfigError{Code: "X", Message: "no action"}
	if bare.Error() != "no action" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "no action")
	}
}

func TestIsConfigError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrInvalidSize("1"))

	cfgErr, ok := IsConfigError(wrapped)
	if !ok {
		t.Fatal("IsConfigError() = false for wrapped ConfigError")
	}
	if cfgErr.Code != ErrCodeInvalidSize {
		t.Errorf("Code = %q, want %q", cfgErr.Code, ErrCodeInvalidSize)
	}

	if _, ok := IsConfigError(errors.New("plain")); ok {
		t.Error("IsConfigError() = true for plain error")
	}
	if GetErrorCode(nil) != "" {
		t.Error("GetErrorCode(nil) should be empty")
	}
}

func TestIsUsageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing config", ErrMissingConfig("degree"), true},
		{"unknown argument", ErrUnknownArgument("-x"), true},
		{"unsupported degree", ErrUnsupportedDegree("12", MinDegree, MaxDegree), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUsageError(tt.err); got != tt.want {
				t.Errorf("IsUsageError() = %v, want %v", got, tt.want)
			}
		})
	}
}
