package worker

import (
	"bytes"
	"encoding/gob"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/partition"
	"github.com/agbru/chunkbench/internal/shm"
	"github.com/agbru/chunkbench/internal/stations"
)

func roundTrip(t *testing.T, task Task, open RegionOpener) (Reply, int, string) {
	t.Helper()
	var in, out, errOut bytes.Buffer
	require.NoError(t, gob.NewEncoder(&in).Encode(task))
	code := serve(&in, &out, &errOut, open)

	var reply Reply
	if code != 2 {
		require.NoError(t, gob.NewDecoder(&out).Decode(&reply))
	}
	return reply, code, errOut.String()
}

func noRegion(int) (*shm.Region, error) {
	return nil, errors.New("no region expected")
}

func TestServeStations(t *testing.T) {
	reply, code, stderr := roundTrip(t, Task{
		Workload: Stations,
		Chunk:    1,
		Lines:    []string{"A;10.0", "B;20.0", "A;30.0"},
	}, noRegion)

	require.Equal(t, 0, code, stderr)
	assert.Nil(t, reply.Failure)
	assert.Equal(t, "{A=10.0/30.0/20.0, B=20.0/20.0/20.0}", stations.Format(reply.Stations))
}

func TestServeStationsMalformed(t *testing.T) {
	reply, code, stderr := roundTrip(t, Task{
		Workload: Stations,
		Chunk:    2,
		Offset:   100,
		Lines:    []string{"A;10.0", "broken"},
	}, noRegion)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "obrc chunk 2")
	require.NotNil(t, reply.Failure)

	var parseErr *stations.ParseError
	require.ErrorAs(t, reply.Failure.Err(), &parseErr)
	assert.Equal(t, 102, parseErr.Line)
	assert.Equal(t, "broken", parseErr.Text)
}

func TestServeUnknownWorkload(t *testing.T) {
	reply, code, _ := roundTrip(t, Task{Workload: "sorting"}, noRegion)
	assert.Equal(t, 1, code)
	require.NotNil(t, reply.Failure)
	assert.Contains(t, reply.Failure.Message, "unknown workload")
}

func TestServeGarbageInput(t *testing.T) {
	var out, errOut bytes.Buffer
	code := serve(bytes.NewBufferString("not gob"), &out, &errOut, noRegion)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "decode task")
}

func TestServeEscapeWritesSlab(t *testing.T) {
	params := escape.DefaultParams()
	params.Density = 16
	params.MaxIter = 64

	parent, err := shm.Create(t.TempDir(), RegionSize(params))
	if errors.Is(err, shm.ErrUnsupported) {
		t.Skip(err)
	}
	require.NoError(t, err)
	defer parent.Close()

	// Stand in for the inherited descriptor with a second open of the same
	// file, so the child's mapping and the parent's share cells.
	open := func(size int) (*shm.Region, error) {
		f, err := os.OpenFile("/dev/fd/"+strconv.Itoa(int(parent.File().Fd())), os.O_RDWR, 0)
		if err != nil {
			t.Skipf("cannot reopen descriptor: %v", err)
		}
		return shm.Open(f, size)
	}

	rows := partition.Range{Start: 4, End: 8}
	reply, code, stderr := roundTrip(t, Task{Workload: Escape, Chunk: 1, Rows: rows, Grid: params}, open)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 4*16, reply.Cells)

	grid, err := escape.NewGrid(params)
	require.NoError(t, err)
	want := escape.NewBuffer(grid.Rows(), grid.Cols())
	require.NoError(t, escape.EvaluateChunk(grid, rows, partition.Full(grid.Cols()), want))

	got, err := escape.WrapBuffer(parent.Int32s(), grid.Rows(), grid.Cols())
	require.NoError(t, err)
	assert.True(t, got.Equal(want), "shared region should hold exactly the worker's slab")
}
