package dispatch

import (
	"context"

	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/partition"
	"github.com/agbru/chunkbench/internal/stations"
	"github.com/agbru/chunkbench/internal/worker"
)

// Stations aggregates lines under mode. numChunks is validated for every
// mode, and rejected before any worker starts.
func (d *Dispatcher) Stations(ctx context.Context, mode Mode, lines []string, numChunks int) (result stations.Result, err error) {
	if err := partition.ValidateCount(numChunks); err != nil {
		return nil, err
	}
	ctx, end := d.begin(ctx, string(worker.Stations), mode, numChunks)
	defer func() { end(err) }()

	switch mode {
	case Single:
		result = make(stations.Result)
		if err := stations.ParseLines(lines, result); err != nil {
			return nil, err
		}
		return result, nil
	case MultiThreaded:
		return d.stationsThreaded(lines, numChunks)
	case MultiProcess:
		return d.stationsProcesses(ctx, lines, numChunks)
	default:
		return nil, unknownMode(string(mode))
	}
}

// stationsThreaded gives every goroutine a private result and combines them
// after the join, so no map is shared while workers run.
func (d *Dispatcher) stationsThreaded(lines []string, n int) (stations.Result, error) {
	ranges, err := partition.Ranges(len(lines), n)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("partitioned lines", logging.Int("lines", len(lines)), logging.Int("chunks", n))

	partials := make([]stations.Result, n)
	err = d.runThreads(n, func(i int) error {
		partials[i] = make(stations.Result)
		r := ranges[i]
		return stations.ParseLinesAt(lines[r.Start:r.End], r.Start, partials[i])
	})
	if err != nil {
		return nil, err
	}
	return stations.Combine(partials...), nil
}

// stationsProcesses sends each chunk to its own process and combines the
// serialized results once every process has exited.
func (d *Dispatcher) stationsProcesses(ctx context.Context, lines []string, n int) (stations.Result, error) {
	chunks, err := partition.Split(lines, n)
	if err != nil {
		return nil, err
	}
	tasks := make([]worker.Task, n)
	offset := 0
	for i, chunk := range chunks {
		tasks[i] = worker.Task{Workload: worker.Stations, Chunk: i, Offset: offset, Lines: chunk}
		offset += len(chunk)
	}

	replies, err := d.runProcesses(ctx, tasks, nil)
	if err != nil {
		return nil, err
	}
	partials := make([]stations.Result, len(replies))
	for i, reply := range replies {
		partials[i] = reply.Stations
	}
	return stations.Combine(partials...), nil
}
