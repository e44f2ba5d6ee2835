package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/logging"
)

// ProgressBufferMultiplier defines the buffer size of the progress channel
// relative to the number of modes, so a slow display never stalls the
// benchmark loop between runs.
const ProgressBufferMultiplier = 4

// ExecuteStrategies runs w under every mode, runs times each.
//
// Runs are strictly sequential so that timings never overlap and each
// strategy owns the machine while it is measured. A mode stops at its first
// error; the remaining modes still run so the comparison table is complete.
// A run whose output differs from the previous run of the same mode is
// reported as apperrors.ErrMismatch. Cancellation of ctx is checked between
// runs.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - w: The workload to run.
//   - modes: The execution strategies, in the order they run.
//   - runs: The number of repetitions per mode (at least 1).
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - logger: The logger for per-run debug output.
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []StrategyResult: One result per mode, in the order of modes.
func ExecuteStrategies(ctx context.Context, w Workload, modes []dispatch.Mode, runs int, reporter ProgressReporter, logger logging.Logger, out io.Writer) []StrategyResult {
	runs = max(runs, 1)
	results := make([]StrategyResult, len(modes))
	progressChan := make(chan ProgressUpdate, len(modes)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(modes)*runs, out)

	for i, mode := range modes {
		results[i] = runMode(ctx, w, mode, runs, progressChan, logger)
	}

	close(progressChan)
	displayWg.Wait()
	return results
}

func runMode(ctx context.Context, w Workload, mode dispatch.Mode, runs int, progressChan chan<- ProgressUpdate, logger logging.Logger) StrategyResult {
	res := StrategyResult{Mode: mode, Durations: make([]time.Duration, 0, runs)}
	for run := 1; run <= runs; run++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		start := time.Now()
		output, err := w.Run(ctx, mode)
		elapsed := time.Since(start)
		progressChan <- ProgressUpdate{Mode: mode, Run: run, Runs: runs, Elapsed: elapsed, Err: err}
		if err != nil {
			res.Err = err
			return res
		}
		if run > 1 && output.Digest != res.Output.Digest {
			res.Err = apperrors.WrapError(apperrors.ErrMismatch, "%s run %d differs from run %d", mode, run, run-1)
			return res
		}
		res.Durations = append(res.Durations, elapsed)
		res.Output = output
		logger.Debug("run complete",
			logging.String("workload", w.Name()), logging.String("mode", string(mode)),
			logging.Int("run", run), logging.Duration("elapsed", elapsed),
			logging.Uint64("digest", output.Digest))
	}
	return res
}

// AnalyzeComparisonResults processes the results of every strategy and
// decides the outcome of the benchmark.
//
// It displays the comparison table (successful strategies sorted by mean
// duration, failures last), then checks in order: any failed strategy fails
// the whole benchmark with the error of the first failed mode in execution
// order; successful strategies whose digests differ are a mismatch.
//
// Parameters:
//   - results: The results returned by ExecuteStrategies.
//   - opts: Presentation options for the table.
//   - presenter: The result presenter for display formatting.
//   - handler: Maps the failure to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - StrategyResult: The reference result to emit (the first mode's).
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []StrategyResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) (StrategyResult, int) {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b StrategyResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Mean(), b.Mean())
	})
	presenter.PresentComparisonTable(sorted, opts, out)

	if len(results) == 0 {
		return StrategyResult{}, handler.HandleError(apperrors.NewConfigError("no execution mode selected"), out)
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "\nGlobal Status: Failure. Strategy %s did not complete.\n", res.Mode)
			return StrategyResult{}, handler.HandleError(res.Err, out)
		}
	}

	reference := results[0]
	for _, res := range results[1:] {
		if res.Output.Digest != reference.Output.Digest {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s produced different results.\n", reference.Mode, res.Mode)
			return StrategyResult{}, handler.HandleError(apperrors.WrapError(apperrors.ErrMismatch, "%s vs %s", reference.Mode, res.Mode), out)
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All strategies produced identical results.\n")
	}
	return reference, apperrors.ExitSuccess
}
