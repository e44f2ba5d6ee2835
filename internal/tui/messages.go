package tui

import (
	"time"

	"github.com/agbru/chunkbench/internal/orchestration"
)

// ProgressMsg reports one finished run.
type ProgressMsg struct {
	Update orchestration.ProgressUpdate
}

// ComparisonResultsMsg carries the per-mode results once every mode ran.
type ComparisonResultsMsg struct {
	Results []orchestration.StrategyResult
}

// ErrorMsg reports the error that fails the benchmark.
type ErrorMsg struct {
	Err error
}

// BenchmarkCompleteMsg is sent when orchestration has returned.
type BenchmarkCompleteMsg struct {
	ExitCode int
}

// TickMsg drives periodic system sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
