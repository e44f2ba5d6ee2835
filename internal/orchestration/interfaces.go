package orchestration

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/agbru/chunkbench/internal/dispatch"
	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/stations"
)

// Workload is one benchmarkable computation that can run under any mode.
type Workload interface {
	// Name is the workload's CLI name ("obrc" or "mandelbrot").
	Name() string
	// Unit names what Output.Items counts, for throughput display.
	Unit() string
	// Run executes the workload once under mode.
	Run(ctx context.Context, mode dispatch.Mode) (Output, error)
}

// Output is what one run of a workload produced. Exactly one of Stations
// and Grid is set.
type Output struct {
	// Digest fingerprints the result so strategies can be compared cheaply.
	Digest uint64
	// Items is the number of lines or cells processed.
	Items    int
	Stations stations.Result
	Grid     *escape.Buffer
}

// StrategyResult encapsulates the outcome of every run of one mode.
// It serves as the shared domain type between orchestration and presentation layers.
type StrategyResult struct {
	// Mode is the execution strategy.
	Mode dispatch.Mode
	// Durations holds one entry per completed run.
	Durations []time.Duration
	// Output is the output of the last completed run.
	Output Output
	// Err is the first error encountered. Runs stop at the first error.
	Err error
}

// Mean returns the mean duration of the completed runs.
func (r StrategyResult) Mean() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range r.Durations {
		total += d
	}
	return total / time.Duration(len(r.Durations))
}

// Best returns the shortest completed run.
func (r StrategyResult) Best() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return slices.Min(r.Durations)
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Workload string
	Unit     string
	Chunks   int
	Runs     int
}

// ProgressUpdate is sent after every run.
type ProgressUpdate struct {
	Mode    dispatch.Mode
	Run     int // 1-based
	Runs    int
	Elapsed time.Duration
	Err     error
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation layer;
// implementations handle the visual representation (spinners, progress bars)
// while the orchestration layer focuses on running the strategies.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per finished run.
	//   - totalRuns: The number of runs planned across all modes.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer) {
	f(wg, progressChan, totalRuns, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-mode timing summary.
	PresentComparisonTable(results []StrategyResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports a run error and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
