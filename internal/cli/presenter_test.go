package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/metrics"
	"github.com/agbru/chunkbench/internal/orchestration"
	"github.com/agbru/chunkbench/internal/sysmon"
	"github.com/agbru/chunkbench/internal/ui"
)

func TestPresentComparisonTable(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetCurrentTheme(ui.NoColorTheme)

	results := []orchestration.StrategyResult{
		{Mode: dispatch.MultiThreaded, Durations: []time.Duration{2 * time.Millisecond, 4 * time.Millisecond},
			Output: orchestration.Output{Items: 3000}},
		{Mode: dispatch.MultiProcess, Err: errors.New("exit status 1")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, orchestration.PresentationOptions{
		Workload: "obrc", Unit: "lines", Chunks: 4, Runs: 2,
	}, &buf)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	for _, want := range []string{"obrc, 4 chunks", "Mode", "Throughput", "multi-threaded", "2/2", "3ms", "2ms", "1.00M lines/s", "Success", "0/2", "Failure (exit status 1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}
	// Columns line up without colors.
	if strings.Index(lines[2], "2/2") != strings.Index(lines[1], "Runs") {
		t.Errorf("Runs column misaligned:\n%s", out)
	}
}

func TestHandleError(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetCurrentTheme(ui.NoColorTheme)

	tests := []struct {
		err  error
		code int
	}{
		{nil, apperrors.ExitSuccess},
		{apperrors.NewConfigError("bad"), apperrors.ExitErrorConfig},
		{apperrors.InputError{Source: "m.txt", Cause: errors.New("line 3")}, apperrors.ExitErrorInput},
		{&apperrors.WorkerError{Chunk: 2, Mode: "multi-process", Cause: errors.New("killed")}, apperrors.ExitErrorGeneric},
		{apperrors.ErrMismatch, apperrors.ExitErrorMismatch},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if got := (CLIResultPresenter{}).HandleError(tt.err, &buf); got != tt.code {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.code)
		}
		if tt.err != nil && !strings.HasPrefix(buf.String(), "Error: ") {
			t.Errorf("output %q should start with Error:", buf.String())
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}
	if got := p.FormatDuration(0); got != "-" {
		t.Errorf("FormatDuration(0) = %q, want -", got)
	}
	if got := p.FormatDuration(15 * time.Millisecond); got != "15ms" {
		t.Errorf("FormatDuration(15ms) = %q", got)
	}
}

func TestDisplayStats(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetCurrentTheme(ui.NoColorTheme)

	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryDelta{Allocated: 1234567, GCCycles: 3, PauseNs: 2_500_000, PeakSys: 1000}, &buf)
	DisplaySystemStats(sysmon.Stats{LogicalCPUs: 8, PhysicalCPUs: 4, CPUPercent: 12.5, MemPercent: 40, TotalMemory: 2048}, &buf)
	out := buf.String()
	for _, want := range []string{"1,234,567 bytes", "GC cycles:       3", "2.50ms", "8 logical / 4 physical", "12.5%", "2,048 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}
