package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/chunkbench/internal/cli"
	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/metrics"
	"github.com/agbru/chunkbench/internal/orchestration"
	"github.com/agbru/chunkbench/internal/stations"
	"github.com/agbru/chunkbench/internal/sysmon"
	"github.com/agbru/chunkbench/internal/tui"
	"github.com/agbru/chunkbench/internal/worker"
)

// errorReporter sends error reports to a fixed writer, so quiet mode can
// discard the summary and still print the error.
type errorReporter struct {
	w io.Writer
}

func (r errorReporter) HandleError(err error, _ io.Writer) int {
	return cli.CLIResultPresenter{}.HandleError(err, r.w)
}

// runBenchmark loads the workload, runs it under every selected mode,
// compares the strategies and emits the result.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	handler := errorReporter{w: a.ErrWriter}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	modes, err := orchestration.SelectModes(cfg.Mode)
	if err != nil {
		return handler.HandleError(err, nil)
	}

	registry := metrics.NewRegistry()
	opts := []dispatch.Option{dispatch.WithLogger(a.logger), dispatch.WithRecorder(registry)}
	if a.launcher != nil {
		opts = append(opts, dispatch.WithLauncher(a.launcher))
	}
	d := dispatch.New(opts...)

	w, err := a.buildWorkload(d)
	if err != nil {
		return handler.HandleError(err, nil)
	}

	summaryOut := a.ErrWriter
	interactive := !cfg.Quiet && cli.IsTerminal(a.ErrWriter)
	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if cfg.Quiet {
		summaryOut = io.Discard
	}
	if !interactive {
		reporter = orchestration.NullProgressReporter{}
	}

	cli.PrintExecutionConfig(cfg, summaryOut)
	cli.PrintExecutionMode(modes, summaryOut)
	a.logger.Info("benchmark starting",
		logging.String("workload", cfg.Workload), logging.String("mode", cfg.Mode),
		logging.Int("chunks", cfg.NumChunks), logging.Int("runs", cfg.Runs))

	presOpts := orchestration.PresentationOptions{
		Workload: w.Name(),
		Unit:     w.Unit(),
		Chunks:   cfg.NumChunks,
		Runs:     cfg.Runs,
	}
	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()

	var (
		reference orchestration.StrategyResult
		code      int
	)
	if cfg.TUI && interactive {
		reference, code = tui.Run(ctx, w, modes, cfg.Runs, presOpts, a.logger, a.ErrWriter)
	} else {
		results := orchestration.ExecuteStrategies(ctx, w, modes, cfg.Runs, reporter, a.logger, a.ErrWriter)
		reference, code = orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, handler, summaryOut)
	}

	if cfg.MetricsFile != "" {
		if err := registry.WriteTextfile(cfg.MetricsFile); err != nil {
			a.logger.Error("metrics not written", err, logging.String("path", cfg.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = handler.HandleError(err, nil)
			}
		}
	}
	if code != apperrors.ExitSuccess {
		return code
	}

	outputCfg := cli.OutputConfig{OutputFile: cfg.OutputFile, MaxIter: a.gridParams.MaxIter, Quiet: cfg.Quiet}
	if err := cli.DisplayResult(out, a.ErrWriter, reference, outputCfg); err != nil {
		return handler.HandleError(apperrors.WrapError(err, "saving result"), nil)
	}

	cli.DisplayMemoryStats(memory.Since(before), summaryOut)
	cli.DisplaySystemStats(sysmon.SampleContext(ctx), summaryOut)
	return apperrors.ExitSuccess
}

// buildWorkload prepares the configured workload. A measurements file that
// cannot be read is reported as an input error.
func (a *Application) buildWorkload(d *dispatch.Dispatcher) (orchestration.Workload, error) {
	switch a.Config.Workload {
	case string(worker.Stations):
		lines, err := stations.LoadLines(a.Config.Input)
		if err != nil {
			return nil, apperrors.InputError{Source: a.Config.Input, Cause: err}
		}
		a.logger.Debug("measurements loaded", logging.String("path", a.Config.Input), logging.Int("lines", len(lines)))
		return orchestration.NewStationsWorkload(d, a.Config.Input, lines, a.Config.NumChunks), nil
	case string(worker.Escape):
		grid, err := escape.NewGrid(a.gridParams)
		if err != nil {
			return nil, err
		}
		return orchestration.NewEscapeWorkload(d, grid, a.Config.NumChunks), nil
	default:
		return nil, apperrors.NewConfigError("unknown workload %q", a.Config.Workload)
	}
}
