package worker

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/partition"
	"github.com/agbru/chunkbench/internal/shm"
	"github.com/agbru/chunkbench/internal/stations"
)

// Requested reports whether this process was started as a worker.
func Requested() bool {
	return os.Getenv(EnvKey) == "1"
}

// RegionOpener maps the shared result region of the given size.
type RegionOpener func(size int) (*shm.Region, error)

// InheritedRegion opens the region passed by the parent as shm.ChildFD.
func InheritedRegion(size int) (*shm.Region, error) {
	return shm.Open(os.NewFile(shm.ChildFD, "chunkbench-shm"), size)
}

// Main runs one task read from stdin and writes its reply to stdout. It
// returns the process exit code: 0 on success, 1 when the task failed, 2 when
// the protocol itself broke.
func Main(stdin io.Reader, stdout, stderr io.Writer) int {
	return serve(stdin, stdout, stderr, InheritedRegion)
}

func serve(stdin io.Reader, stdout, stderr io.Writer, open RegionOpener) int {
	var task Task
	if err := gob.NewDecoder(stdin).Decode(&task); err != nil {
		fmt.Fprintf(stderr, "decode task: %v\n", err)
		return 2
	}

	reply, err := Execute(task, open)
	code := 0
	if err != nil {
		reply = Reply{Failure: newFailure(err)}
		fmt.Fprintf(stderr, "%s: %v\n", task, err)
		code = 1
	}
	if err := gob.NewEncoder(stdout).Encode(reply); err != nil {
		fmt.Fprintf(stderr, "encode reply: %v\n", err)
		return 2
	}
	return code
}

// Execute runs the per-chunk workload function for task.
func Execute(task Task, open RegionOpener) (Reply, error) {
	switch task.Workload {
	case Stations:
		result := make(stations.Result)
		if err := stations.ParseLinesAt(task.Lines, task.Offset, result); err != nil {
			return Reply{}, err
		}
		return Reply{Stations: result}, nil
	case Escape:
		return executeEscape(task, open)
	default:
		return Reply{}, fmt.Errorf("unknown workload %q", task.Workload)
	}
}

func executeEscape(task Task, open RegionOpener) (Reply, error) {
	grid, err := escape.NewGrid(task.Grid)
	if err != nil {
		return Reply{}, err
	}
	region, err := open(RegionSize(task.Grid))
	if err != nil {
		return Reply{}, err
	}
	defer region.Close()

	dst, err := escape.WrapBuffer(region.Int32s(), grid.Rows(), grid.Cols())
	if err != nil {
		return Reply{}, err
	}
	if err := escape.EvaluateChunk(grid, task.Rows, partition.Full(grid.Cols()), dst); err != nil {
		return Reply{}, err
	}
	return Reply{Cells: task.Rows.Len() * grid.Cols()}, nil
}
