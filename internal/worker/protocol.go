// Package worker implements the child side of the multi-process strategy.
//
// The parent re-executes its own binary with EnvKey=1, writes one gob-encoded
// Task to the child's stdin and reads one gob-encoded Reply from its stdout.
// For the escape-time workload the child also inherits the shared result
// region as file descriptor shm.ChildFD and writes its row slab there.
package worker

import (
	"errors"
	"fmt"

	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/partition"
	"github.com/agbru/chunkbench/internal/stations"
)

// EnvKey selects worker mode when set to "1" in the environment.
const EnvKey = "CHUNKBENCH_WORKER"

// Workload names a per-chunk computation.
type Workload string

const (
	// Stations is the station statistics workload.
	Stations Workload = "obrc"
	// Escape is the escape-time grid workload.
	Escape Workload = "mandelbrot"
)

// Task is the unit of work sent to one child.
type Task struct {
	Workload Workload
	Chunk    int

	// Stations: the chunk's lines and the index of its first line.
	Offset int
	Lines  []string

	// Escape: the row slab to fill and the grid it belongs to.
	Rows partition.Range
	Grid escape.Params
}

// Reply is the unit of work sent back by one child.
type Reply struct {
	Stations stations.Result
	Cells    int
	Failure  *Failure
}

// Failure is a worker error in transportable form.
type Failure struct {
	Message string
	// Line and Text are set when the failure is a malformed measurement.
	Line int
	Text string
}

// Err rebuilds an error from the failure, restoring *stations.ParseError so
// callers can classify malformed input the same way for every strategy.
func (f *Failure) Err() error {
	if f == nil {
		return nil
	}
	if f.Line > 0 {
		return &stations.ParseError{Line: f.Line, Text: f.Text, Cause: errors.New(f.Message)}
	}
	return errors.New(f.Message)
}

func newFailure(err error) *Failure {
	var parseErr *stations.ParseError
	if errors.As(err, &parseErr) {
		return &Failure{Message: parseErr.Cause.Error(), Line: parseErr.Line, Text: parseErr.Text}
	}
	return &Failure{Message: err.Error()}
}

// RegionSize returns the shared region size in bytes for a grid.
func RegionSize(p escape.Params) int {
	return p.Density * p.Density * escape.CellSize
}

func (t Task) String() string {
	switch t.Workload {
	case Stations:
		return fmt.Sprintf("%s chunk %d (%d lines from %d)", t.Workload, t.Chunk, len(t.Lines), t.Offset)
	default:
		return fmt.Sprintf("%s chunk %d rows %v", t.Workload, t.Chunk, t.Rows)
	}
}
