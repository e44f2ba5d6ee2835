package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/format"
	"github.com/agbru/chunkbench/internal/metrics"
	"github.com/agbru/chunkbench/internal/orchestration"
	"github.com/agbru/chunkbench/internal/sysmon"
	"github.com/agbru/chunkbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while runs execute.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalRuns, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for benchmark results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

var tableHeaders = []string{"Mode", "Runs", "Mean", "Best", "Throughput", "Status"}

// PresentComparisonTable displays the comparison summary table with mode
// names, timings, throughput and status. Cells are padded before colors are
// applied so ANSI codes do not break the alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary (%s, %d chunks) ---\n", opts.Workload, opts.Chunks)

	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{
			string(res.Mode),
			fmt.Sprintf("%d/%d", len(res.Durations), opts.Runs),
			p.FormatDuration(res.Mean()),
			p.FormatDuration(res.Best()),
			format.FormatThroughput(res.Output.Items, res.Mean(), opts.Unit),
		}
		if res.Err != nil {
			rows[i] = append(rows[i], "Failure ("+res.Err.Error()+")")
		} else {
			rows[i] = append(rows[i], "Success")
		}
	}

	widths := make([]int, len(tableHeaders))
	for c, h := range tableHeaders {
		widths[c] = len(h)
		for _, row := range rows {
			widths[c] = max(widths[c], len([]rune(row[c])))
		}
	}

	header := make([]string, len(tableHeaders))
	for c, h := range tableHeaders {
		header[c] = ui.HeaderStyle().Render(h) + padRight("", widths[c]-len(h))
	}
	fmt.Fprintln(out, strings.TrimRight(strings.Join(header, "   "), " "))

	for r, row := range rows {
		colors := []string{ui.ColorBlue(), "", ui.ColorYellow(), ui.ColorYellow(), ui.ColorCyan(), ui.ColorGreen()}
		if results[r].Err != nil {
			colors[5] = ui.ColorRed()
		}
		cells := make([]string, len(row))
		for c, cell := range row {
			pad := ""
			if c < len(row)-1 {
				pad = padRight("", widths[c]-len([]rune(cell)))
			}
			cells[c] = ui.Colorize(colors[c], cell) + pad
		}
		fmt.Fprintln(out, strings.Join(cells, "   "))
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting. Zero renders as "-".
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError prints the error and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
	return apperrors.ExitCode(err)
}

// DisplayMemoryStats shows the parent process's memory activity during the
// runs.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats (parent process):\n")
	fmt.Fprintf(out, "  Total allocated: %s bytes\n", format.FormatNumberString(fmt.Sprint(delta.Allocated)))
	fmt.Fprintf(out, "  Runtime memory:  %s bytes\n", format.FormatNumberString(fmt.Sprint(delta.PeakSys)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseNs)/1e6)
}

// DisplaySystemStats shows a system-wide resource sample.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "System: %s%d%s logical / %d physical CPUs, CPU %.1f%%, memory %.1f%% of %s bytes.\n",
		ui.ColorCyan(), s.LogicalCPUs, ui.ColorReset(), s.PhysicalCPUs,
		s.CPUPercent, s.MemPercent, format.FormatNumberString(fmt.Sprint(s.TotalMemory)))
}
