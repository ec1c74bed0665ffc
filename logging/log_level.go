package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// EnvLogLevel names the environment variable that overrides the log level.
const EnvLogLevel = "NEWTON_LOG_LEVEL"

// ParseLevel parses a case-insensitive level name. "warning" is accepted
// as an alias of "warn".
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// LevelFromEnv reads envVar and returns the parsed level. An unset or
// unrecognised value yields fallback.
//
// Example:
//
//	level := LevelFromEnv(EnvLogLevel, zapcore.InfoLevel)
func LevelFromEnv(envVar string, fallback zapcore.Level) zapcore.Level {
	value, ok := os.LookupEnv(envVar)
	if !ok || value == "" {
		return fallback
	}
	level, err := ParseLevel(value)
	if err != nil {
		return fallback
	}
	return level
}
