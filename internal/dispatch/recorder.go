package dispatch

import "time"

// Recorder receives run and worker events, typically to export metrics.
type Recorder interface {
	ObserveRun(workload string, mode Mode, chunks int, elapsed time.Duration, err error)
	WorkerStarted(mode Mode)
	WorkerFailed(mode Mode)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(string, Mode, int, time.Duration, error) {}
func (nopRecorder) WorkerStarted(Mode)                                 {}
func (nopRecorder) WorkerFailed(Mode)                                  {}
