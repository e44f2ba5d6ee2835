package dispatch

import (
	"context"

	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/partition"
	"github.com/agbru/chunkbench/internal/shm"
	"github.com/agbru/chunkbench/internal/worker"
)

// Escape evaluates grid under mode. Chunks split the x-axis only, so every
// worker owns a full-height slab of the buffer and no merge is needed.
func (d *Dispatcher) Escape(ctx context.Context, mode Mode, grid escape.Grid, numChunks int) (buf *escape.Buffer, err error) {
	if err := partition.ValidateCount(numChunks); err != nil {
		return nil, err
	}
	ctx, end := d.begin(ctx, string(worker.Escape), mode, numChunks)
	defer func() { end(err) }()

	switch mode {
	case Single:
		return escape.Evaluate(grid)
	case MultiThreaded:
		return d.escapeThreaded(grid, numChunks)
	case MultiProcess:
		return d.escapeProcesses(ctx, grid, numChunks)
	default:
		return nil, unknownMode(string(mode))
	}
}

// escapeThreaded lets every goroutine write its slab of one shared buffer.
func (d *Dispatcher) escapeThreaded(grid escape.Grid, n int) (*escape.Buffer, error) {
	ranges, err := partition.Ranges(grid.Rows(), n)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("partitioned grid rows", logging.Int("rows", grid.Rows()), logging.Int("chunks", n))

	buf := escape.NewBuffer(grid.Rows(), grid.Cols())
	cols := partition.Full(grid.Cols())
	err = d.runThreads(n, func(i int) error {
		return escape.EvaluateChunk(grid, ranges[i], cols, buf)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// escapeProcesses maps one shared region, lets every child write its slab
// into it, and copies the cells out after the last child has exited. The
// region is unmapped before returning.
func (d *Dispatcher) escapeProcesses(ctx context.Context, grid escape.Grid, n int) (*escape.Buffer, error) {
	ranges, err := partition.Ranges(grid.Rows(), n)
	if err != nil {
		return nil, err
	}
	region, err := shm.Create(d.tempDir, worker.RegionSize(grid.Params))
	if err != nil {
		return nil, err
	}
	defer region.Close()

	tasks := make([]worker.Task, n)
	for i, r := range ranges {
		tasks[i] = worker.Task{Workload: worker.Escape, Chunk: i, Rows: r, Grid: grid.Params}
	}
	if _, err := d.runProcesses(ctx, tasks, region); err != nil {
		return nil, err
	}

	shared, err := escape.WrapBuffer(region.Int32s(), grid.Rows(), grid.Cols())
	if err != nil {
		return nil, err
	}
	return shared.Clone(), nil
}
