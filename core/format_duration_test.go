package core

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0ms"},
		{"sub millisecond", 400 * time.Microsecond, "0ms"},
		{"milliseconds", 250 * time.Millisecond, "250ms"},
		{"one second", time.Second, "1.00s"},
		{"fractional seconds", 3420 * time.Millisecond, "3.42s"},
		{"one minute", time.Minute, "1m 0s"},
		{"minutes and seconds", 2*time.Minute + 30*time.Second, "2m 30s"},
		{"one hour", time.Hour, "1h 0m"},
		{"hours and minutes", 26*time.Hour + 5*time.Minute, "26h 5m"},
		{"negative", -1500 * time.Millisecond, "-1.50s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.duration); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}
