package core

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable LoadConfig reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvThreads, EnvSize, EnvOutputDir, EnvHistoryDB, EnvHistoryKeep, EnvPreviewSize,
		EnvGops, EnvShowValidation, EnvLogLevel, EnvLogFile, EnvDevMode, EnvConfigFile,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newton.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := loadConfig([]string{"-t4", "-l100", "3"}, missing)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Degree != 3 || cfg.Threads != 4 || cfg.Size != 100 {
		t.Errorf("render params = (%d, %d, %d), want (3, 4, 100)", cfg.Degree, cfg.Threads, cfg.Size)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want .", cfg.OutputDir)
	}
	if cfg.HistoryDB != "" || cfg.PreviewSize != 0 {
		t.Errorf("optional outputs should be disabled, got %q / %d", cfg.HistoryDB, cfg.PreviewSize)
	}
	if !cfg.ShowValidation {
		t.Error("ShowValidation should default to true")
	}
	if cfg.LogFile != "newton.log" {
		t.Errorf("LogFile = %q, want newton.log", cfg.LogFile)
	}
	if cfg.ProfilePath != "" {
		t.Errorf("ProfilePath = %q, want empty", cfg.ProfilePath)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	profile := writeProfile(t, "threads: 2\nsize: 50\noutput_dir: /from/profile\npreview_size: 64\n")
	t.Setenv(EnvConfigFile, profile)
	t.Setenv(EnvSize, "80")

	cfg, err := LoadConfig([]string{"-t8", "5"})
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Threads != 8 {
		t.Errorf("Threads = %d, want 8 from the command line", cfg.Threads)
	}
	if cfg.Size != 80 {
		t.Errorf("Size = %d, want 80 from the environment", cfg.Size)
	}
	if cfg.OutputDir != "/from/profile" {
		t.Errorf("OutputDir = %q, want profile value", cfg.OutputDir)
	}
	if cfg.PreviewSize != 64 {
		t.Errorf("PreviewSize = %d, want 64", cfg.PreviewSize)
	}
	if cfg.ProfilePath != profile {
		t.Errorf("ProfilePath = %q, want %q", cfg.ProfilePath, profile)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		wantCode string
	}{
		{"threads missing everywhere", []string{"-l10", "3"}, nil, ErrCodeMissingConfig},
		{"size missing everywhere", []string{"-t1", "3"}, nil, ErrCodeMissingConfig},
		{"malformed env threads", []string{"-l10", "3"}, map[string]string{EnvThreads: "many"}, ErrCodeInvalidThreads},
		{"malformed env size", []string{"-t1", "3"}, map[string]string{EnvSize: "2x"}, ErrCodeInvalidSize},
		{"explicit profile missing", []string{"-t1", "-l10", "3"}, map[string]string{EnvConfigFile: "/no/such/newton.yaml"}, ErrCodeInvalidConfigFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadConfig(tt.args, filepath.Join(t.TempDir(), "absent.yaml"))
			if code := GetErrorCode(err); code != tt.wantCode {
				t.Errorf("loadConfig() error code = %q (%v), want %q", code, err, tt.wantCode)
			}
		})
	}
}

func TestLoadConfig_DefaultProfile(t *testing.T) {
	clearEnv(t)
	profile := writeProfile(t, "threads: 3\nsize: 9\nhistory_db: runs.db\nhistory_retention_days: 30\n")

	cfg, err := loadConfig([]string{"2"}, profile)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Threads != 3 || cfg.Size != 9 || cfg.HistoryDB != "runs.db" || cfg.HistoryDays != 30 {
		t.Errorf("got threads=%d size=%d history=%q days=%d", cfg.Threads, cfg.Size, cfg.HistoryDB, cfg.HistoryDays)
	}
}

func TestLoadProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file", "", false},
		{"known keys", "threads: 1\nsize: 2\n", false},
		{"unknown key", "colour: blue\n", true},
		{"bad type", "threads: lots\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && GetErrorCode(err) != ErrCodeInvalidConfigFile {
				t.Errorf("error code = %q, want %q", GetErrorCode(err), ErrCodeInvalidConfigFile)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode string
	}{
		{"valid", Config{Degree: 9, Threads: 1, Size: 2}, ""},
		{"degree zero", Config{Degree: 0, Threads: 1, Size: 2}, ErrCodeUnsupportedDegree},
		{"degree ten", Config{Degree: 10, Threads: 1, Size: 2}, ErrCodeUnsupportedDegree},
		{"no threads", Config{Degree: 3, Threads: 0, Size: 2}, ErrCodeInvalidThreads},
		{"size one", Config{Degree: 3, Threads: 1, Size: 1}, ErrCodeInvalidSize},
		{"negative preview", Config{Degree: 3, Threads: 1, Size: 5, PreviewSize: -1}, ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if code := GetErrorCode(err); code != tt.wantCode {
				t.Errorf("Validate() code = %q (%v), want %q", code, err, tt.wantCode)
			}
			if tt.wantCode == "" && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}
