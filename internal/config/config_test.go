package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"

	apperrors "github.com/agbru/chunkbench/internal/errors"
)

// TestParseConfig verifies flag parsing, positional placement and
// validation.
func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, c AppConfig)
		wantErr bool
	}{
		{
			name: "Positionals only use defaults",
			args: []string{"obrc", "single"},
			check: func(t *testing.T, c AppConfig) {
				if c.Workload != "obrc" || c.Mode != "single" {
					t.Errorf("got %q %q", c.Workload, c.Mode)
				}
				if c.NumChunks != DefaultNumChunks() {
					t.Errorf("NumChunks = %d, want %d", c.NumChunks, DefaultNumChunks())
				}
				if c.Input != "measurements.txt" || c.Runs != 1 {
					t.Errorf("Input = %q, Runs = %d", c.Input, c.Runs)
				}
			},
		},
		{
			name: "Flags before, between and after positionals",
			args: []string{"--num-chunks", "3", "mandelbrot", "-q", "multi-threaded", "--runs=2", "-o", "grid.pgm"},
			check: func(t *testing.T, c AppConfig) {
				if c.Workload != "mandelbrot" || c.Mode != "multi-threaded" {
					t.Errorf("got %q %q", c.Workload, c.Mode)
				}
				if c.NumChunks != 3 || c.Runs != 2 || !c.Quiet || c.OutputFile != "grid.pgm" {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name: "Mode all and case folding",
			args: []string{"OBRC", "All"},
			check: func(t *testing.T, c AppConfig) {
				if c.Workload != "obrc" || c.Mode != "all" {
					t.Errorf("got %q %q", c.Workload, c.Mode)
				}
			},
		},
		{
			name: "Version needs no positionals",
			args: []string{"-V"},
			check: func(t *testing.T, c AppConfig) {
				if !c.ShowVersion {
					t.Error("ShowVersion should be set")
				}
			},
		},
		{name: "Zero chunks", args: []string{"obrc", "multi-process", "--num-chunks", "0"}, wantErr: true},
		{name: "Negative chunks", args: []string{"obrc", "single", "--num-chunks=-2"}, wantErr: true},
		{name: "Missing mode", args: []string{"obrc"}, wantErr: true},
		{name: "Unknown workload", args: []string{"sorting", "single"}, wantErr: true},
		{name: "Unknown mode", args: []string{"obrc", "multi-gpu"}, wantErr: true},
		{name: "Extra positional", args: []string{"obrc", "single", "again"}, wantErr: true},
		{name: "Output with obrc", args: []string{"obrc", "single", "-o", "x.pgm"}, wantErr: true},
		{name: "Bad log level", args: []string{"obrc", "single", "--log-level", "loud"}, wantErr: true},
		{name: "Zero runs", args: []string{"obrc", "single", "--runs", "0"}, wantErr: true},
		{name: "Unknown flag", args: []string{"obrc", "single", "--threads", "4"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("chunkbench", tt.args, io.Discard)
			if tt.wantErr {
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
					t.Errorf("exit code = %d, want %d", apperrors.ExitCode(err), apperrors.ExitErrorConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("chunkbench", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usage: chunkbench")) {
		t.Errorf("usage not printed: %q", buf.String())
	}
}

func TestParseConfig_DoubleDash(t *testing.T) {
	cfg, err := ParseConfig("chunkbench", []string{"--runs", "2", "--", "obrc", "single"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workload != "obrc" || cfg.Mode != "single" || cfg.Runs != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

// TestEnvOverrides verifies the priority CLI > environment > defaults.
// t.Setenv forbids t.Parallel.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHUNKBENCH_NUM_CHUNKS", "5")
	t.Setenv("CHUNKBENCH_RUNS", "3")
	t.Setenv("CHUNKBENCH_INPUT", "/tmp/m.txt")
	t.Setenv("CHUNKBENCH_QUIET", "yes")
	t.Setenv("CHUNKBENCH_LOG_LEVEL", "debug")
	t.Setenv("CHUNKBENCH_TUI", "1")

	cfg, err := ParseConfig("chunkbench", []string{"obrc", "all", "--runs", "7"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumChunks != 5 {
		t.Errorf("NumChunks = %d, want 5 from env", cfg.NumChunks)
	}
	if cfg.Runs != 7 {
		t.Errorf("Runs = %d, want 7 from flag", cfg.Runs)
	}
	if cfg.Input != "/tmp/m.txt" || !cfg.Quiet || cfg.LogLevel != "debug" || !cfg.TUI {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestEnvOverrides_ZeroChunksRejected(t *testing.T) {
	t.Setenv("CHUNKBENCH_NUM_CHUNKS", "0")
	_, err := ParseConfig("chunkbench", []string{"mandelbrot", "multi-process"}, io.Discard)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestEnvOverrides_InvalidNumberIgnored(t *testing.T) {
	t.Setenv("CHUNKBENCH_NUM_CHUNKS", "many")
	cfg, err := ParseConfig("chunkbench", []string{"obrc", "single"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumChunks != DefaultNumChunks() {
		t.Errorf("NumChunks = %d, want default", cfg.NumChunks)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestDefaultNumChunks(t *testing.T) {
	t.Parallel()
	if DefaultNumChunks() < 1 {
		t.Errorf("DefaultNumChunks() = %d, want at least 1", DefaultNumChunks())
	}
}

// TestEnvOverridesDocumented keeps the variable list on applyEnvOverrides in
// step with the override table.
func TestEnvOverridesDocumented(t *testing.T) {
	src, err := os.ReadFile("env.go")
	if err != nil {
		t.Fatal(err)
	}
	_, doc, ok := strings.Cut(string(src), "Supported environment variables")
	if !ok {
		t.Fatal("env.go has no list of supported environment variables")
	}
	doc, _, _ = strings.Cut(doc, "func applyEnvOverrides")
	listed := map[string]bool{}
	for _, name := range strings.FieldsFunc(doc, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' || r == '/' || r == '-' }) {
		listed[name] = true
	}
	for _, o := range envOverrides {
		if !listed[o.envKey] {
			t.Errorf("CHUNKBENCH_%s is applied but not listed on applyEnvOverrides", o.envKey)
		}
	}
}
