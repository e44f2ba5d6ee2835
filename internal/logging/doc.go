// Package logging provides the logging interface injected into the benchmark
// engine. It abstracts the underlying logging implementation so the dispatcher
// and orchestrator never touch process-wide logger state.
package logging
