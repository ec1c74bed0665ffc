package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newton_fractal/core"
	"newton_fractal/db"
	"newton_fractal/metrics"
	"newton_fractal/palette"
	"newton_fractal/render"
)

// testEnv points every output of run at a fresh temp directory and returns it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for key, value := range map[string]string{
		core.EnvThreads:        "",
		core.EnvSize:           "",
		core.EnvHistoryKeep:    "",
		core.EnvPreviewSize:    "",
		core.EnvGops:           "false",
		core.EnvLogLevel:       "",
		core.EnvDevMode:        "false",
		core.EnvConfigFile:     "",
		core.EnvShowValidation: "false",
		core.EnvOutputDir:      dir,
		core.EnvLogFile:        filepath.Join(dir, "newton.log"),
		core.EnvHistoryDB:      filepath.Join(dir, "history.db"),
	} {
		t.Setenv(key, value)
	}
	return dir
}

func TestRun_WritesImagesAndReport(t *testing.T) {
	dir := testEnv(t)
	t.Setenv(core.EnvPreviewSize, "4")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-t2", "-l8", "3"}, &stdout, &stderr)
	if code != core.ExitCodeSuccess {
		t.Fatalf("run() = %d, want %d; stderr:\n%s", code, core.ExitCodeSuccess, stderr.String())
	}

	attrPath, convPath := render.OutputPaths(dir, 3)
	wantLen := len(render.Header(8)) + 8*render.RowBytes(8)
	for _, path := range []string{attrPath, convPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		if !strings.HasPrefix(string(data), "P3\n8 8 \n255\n") {
			t.Errorf("%s: unexpected header %q", path, data[:12])
		}
		if len(data) != wantLen {
			t.Errorf("%s: length = %d, want %d", path, len(data), wantLen)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, metrics.ReportFileName(3)))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	report, err := metrics.ParseReport(data)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if report.Degree != 3 || report.Size != 8 || report.Threads != 2 {
		t.Errorf("report params = (%d, %d, %d), want (3, 8, 2)", report.Degree, report.Size, report.Threads)
	}
	var total int64
	for _, n := range report.Pixels.Attractors {
		total += n
	}
	if total != 64 {
		t.Errorf("attractor histogram sums to %d, want 64", total)
	}

	if _, err := os.Stat(filepath.Join(dir, "newton_attractors_x3_preview.png")); err != nil {
		t.Errorf("preview not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "newton.log")); err != nil {
		t.Errorf("log file not written: %v", err)
	}
}

func TestRun_RecordsHistory(t *testing.T) {
	dir := testEnv(t)

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-t", "1", "-l", "4", "2"}, &stdout, &stderr); code != core.ExitCodeSuccess {
			t.Fatalf("run #%d = %d; stderr:\n%s", i+1, code, stderr.String())
		}
	}

	database, err := db.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	repo := db.NewRepository(database)
	count, err := repo.CountRuns(context.Background())
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if count != 2 {
		t.Errorf("CountRuns = %d, want 2", count)
	}

	last, err := repo.LastRun(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last.Threads != 1 || last.Size != 4 {
		t.Errorf("LastRun = %+v", last)
	}
}

func TestRun_DegreeOneFile(t *testing.T) {
	dir := testEnv(t)
	t.Setenv(core.EnvHistoryDB, "")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-t1", "-l3", "1"}, &stdout, &stderr); code != core.ExitCodeSuccess {
		t.Fatalf("run() = %d; stderr:\n%s", code, stderr.String())
	}

	attrPath, _ := render.OutputPaths(dir, 1)
	data, err := os.ReadFile(attrPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	body := data[len(render.Header(3)):]

	// The centre pixel starts at the origin and takes the sentinel colour.
	centre := body[render.RowBytes(3)+palette.CellWidth : render.RowBytes(3)+2*palette.CellWidth]
	want := palette.AttractorCell(palette.AttractorColors - 1)
	if !bytes.Equal(centre, want[:]) {
		t.Errorf("centre cell = %q, want %q", centre, want[:])
	}
	if _, err := os.Stat(filepath.Join(dir, "history.db")); !os.IsNotExist(err) {
		t.Errorf("history database created while disabled")
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "no arguments", args: nil, wantStderr: "Usage:"},
		{name: "unknown flag", args: []string{"-x3", "-t1", "-l4", "3"}, wantStderr: "Usage:"},
		{name: "missing size", args: []string{"-t1", "3"}, wantStderr: "Usage:"},
		{name: "malformed threads", args: []string{"-tfour", "-l4", "3"}, wantStderr: `Invalid thread count "four"`},
		{name: "unsupported degree", args: []string{"-t1", "-l4", "12"}},
		{name: "zero threads", args: []string{"-t0", "-l4", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testEnv(t)

			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != core.ExitCodeError {
				t.Fatalf("run() = %d, want %d", code, core.ExitCodeError)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}

			attrPath, _ := render.OutputPaths(dir, 3)
			if _, err := os.Stat(attrPath); !os.IsNotExist(err) {
				t.Errorf("image created despite configuration error")
			}
		})
	}
}
