package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"newton_fractal/newton"
)

// Environment variables read by LoadConfig.
const (
	EnvThreads        = "NEWTON_THREADS"
	EnvSize           = "NEWTON_SIZE"
	EnvOutputDir      = "NEWTON_OUTPUT_DIR"
	EnvHistoryDB      = "NEWTON_HISTORY_DB"
	EnvHistoryKeep    = "NEWTON_HISTORY_RETENTION_DAYS"
	EnvPreviewSize    = "NEWTON_PREVIEW_SIZE"
	EnvGops           = "NEWTON_GOPS"
	EnvShowValidation = "NEWTON_SHOW_VALIDATION"
	EnvLogLevel       = "NEWTON_LOG_LEVEL"
	EnvLogFile        = "NEWTON_LOG_FILE"
	EnvDevMode        = "DEV_MODE"
	EnvConfigFile     = "NEWTON_CONFIG"
)

// DefaultProfilePath is read when NEWTON_CONFIG is unset and the file exists.
const DefaultProfilePath = "newton.yaml"

// Supported polynomial degrees, re-exported for callers that only import core.
const (
	MinDegree = newton.MinDegree
	MaxDegree = newton.MaxDegree
)

// Lower bounds for the numeric settings.
const (
	MinThreads = 1
	MinSize    = 2
)

// Config holds the settings for one render.
type Config struct {
	// Render parameters
	Degree  int
	Threads int
	Size    int

	// Outputs
	OutputDir   string
	HistoryDB   string // empty disables the history store
	HistoryDays int    // runs older than this many days are pruned, 0 keeps all
	PreviewSize int    // 0 disables the PNG preview

	// Process
	EnableGops     bool
	ShowValidation bool
	DevMode        bool
	LogLevel       string
	LogFile        string

	// ProfilePath is the YAML profile that was applied, or "".
	ProfilePath string
}

// Profile is the optional YAML file of defaults. Pointer fields
// distinguish an absent key from an explicit zero.
type Profile struct {
	Threads     *int   `yaml:"threads"`
	Size        *int   `yaml:"size"`
	OutputDir   string `yaml:"output_dir"`
	HistoryDB   string `yaml:"history_db"`
	HistoryDays int    `yaml:"history_retention_days"`
	PreviewSize *int   `yaml:"preview_size"`
}

// LoadProfile reads and decodes the YAML profile at path. Unknown keys are
// rejected. An empty file is a valid, empty profile.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrInvalidConfigFile(path, err.Error())
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrInvalidConfigFile(path, err.Error())
	}
	return &p, nil
}

// LoadConfig builds a Config from args (without the program name), the
// environment and the optional YAML profile. Command-line values win over
// environment values, which win over the profile.
//
// Only the form of each value is checked here; ranges are checked by
// Validate and the startup validation suite.
func LoadConfig(args []string) (*Config, error) {
	return loadConfig(args, DefaultProfilePath)
}

func loadConfig(args []string, defaultProfile string) (*Config, error) {
	cli, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}

	profile, profilePath, err := resolveProfile(defaultProfile)
	if err != nil {
		return nil, err
	}

	threads, err := resolveInt(cli.Threads, EnvThreads, profile.Threads, ErrInvalidThreads)
	if err != nil {
		return nil, err
	}
	if threads == nil {
		return nil, ErrMissingConfig("thread count (-t)")
	}

	size, err := resolveInt(cli.Size, EnvSize, profile.Size, ErrInvalidSize)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrMissingConfig("image size (-l)")
	}

	previewDefault := 0
	if profile.PreviewSize != nil {
		previewDefault = *profile.PreviewSize
	}

	return &Config{
		Degree:         cli.Degree,
		Threads:        *threads,
		Size:           *size,
		OutputDir:      GetEnvOrDefault(EnvOutputDir, orDefault(profile.OutputDir, ".")),
		HistoryDB:      GetEnvOrDefault(EnvHistoryDB, profile.HistoryDB),
		HistoryDays:    ParseIntEnv(EnvHistoryKeep, profile.HistoryDays),
		PreviewSize:    ParseIntEnv(EnvPreviewSize, previewDefault),
		EnableGops:     ParseBoolEnv(EnvGops, false),
		ShowValidation: ParseBoolEnv(EnvShowValidation, true),
		DevMode:        ParseBoolEnv(EnvDevMode, false),
		LogLevel:       os.Getenv(EnvLogLevel),
		LogFile:        GetEnvOrDefault(EnvLogFile, "newton.log"),
		ProfilePath:    profilePath,
	}, nil
}

// resolveProfile loads NEWTON_CONFIG when set, otherwise defaultPath if it
// exists. A missing explicit profile is an error; a missing default is not.
func resolveProfile(defaultPath string) (*Profile, string, error) {
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		if _, err := os.Stat(defaultPath); err != nil {
			return &Profile{}, "", nil
		}
		path = defaultPath
	}

	p, err := LoadProfile(path)
	if err != nil {
		return nil, "", err
	}
	return p, path, nil
}

// resolveInt picks the first of cli, env or profile that is set.
func resolveInt(cli *int, envKey string, profile *int, invalid func(string) *ConfigError) (*int, error) {
	if cli != nil {
		return cli, nil
	}
	v, ok, err := LookupIntEnv(envKey)
	if err != nil {
		return nil, invalid(os.Getenv(envKey))
	}
	if ok {
		return &v, nil
	}
	return profile, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Validate checks the numeric ranges of c and returns the first fault.
func (c *Config) Validate() error {
	if err := ValidateDegree(c.Degree); err != nil {
		return err
	}
	if err := ValidateThreads(c.Threads); err != nil {
		return err
	}
	if err := ValidateSize(c.Size); err != nil {
		return err
	}
	if c.HistoryDays < 0 {
		return &ConfigError{
			Code:    ErrCodeInvalidConfigFile,
			Message: fmt.Sprintf("Invalid history retention %d days", c.HistoryDays),
			Action:  "Set NEWTON_HISTORY_RETENTION_DAYS to 0 (keep all) or a positive day count",
		}
	}
	if c.PreviewSize < 0 {
		return &ConfigError{
			Code:    ErrCodeInvalidSize,
			Message: fmt.Sprintf("Invalid preview size %d", c.PreviewSize),
			Action:  "Set NEWTON_PREVIEW_SIZE to 0 (disabled) or a positive pixel count",
		}
	}
	return nil
}

// ValidateDegree returns a ConfigError unless d is a supported degree.
func ValidateDegree(d int) error {
	if err := newton.ValidateDegree(d); err != nil {
		return ErrUnsupportedDegree(fmt.Sprint(d), MinDegree, MaxDegree)
	}
	return nil
}

// ValidateThreads returns a ConfigError unless n >= MinThreads.
func ValidateThreads(n int) error {
	if n < MinThreads {
		return ErrInvalidThreads(fmt.Sprint(n))
	}
	return nil
}

// ValidateSize returns a ConfigError unless s >= MinSize.
func ValidateSize(s int) error {
	if s < MinSize {
		return ErrInvalidSize(fmt.Sprint(s))
	}
	return nil
}
