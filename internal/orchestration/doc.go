// Package orchestration runs a workload under each selected execution mode,
// repeats every run, and compares the outputs of the strategies. It decouples
// the benchmark loop from presentation via the ProgressReporter,
// ResultPresenter and ErrorHandler interfaces.
package orchestration
