package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/stations"
)

type stubStations struct {
	result stations.Result
	err    error
}

func (s stubStations) Stations(context.Context, dispatch.Mode, []string, int) (stations.Result, error) {
	return s.result, s.err
}

func TestStationsWorkloadDigestFollowsFormat(t *testing.T) {
	t.Parallel()
	a := stations.Result{"A": stations.NewStats(10)}
	b := stations.Result{"A": stations.NewStats(10)}
	c := stations.Result{"A": stations.NewStats(11)}

	run := func(r stations.Result) Output {
		out, err := NewStationsWorkload(stubStations{result: r}, "in", []string{"A;10"}, 2).Run(context.Background(), dispatch.Single)
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, run(a).Digest, run(b).Digest)
	assert.NotEqual(t, run(a).Digest, run(c).Digest)
	assert.Equal(t, 1, run(a).Items)
}

func TestStationsWorkloadWrapsParseErrors(t *testing.T) {
	t.Parallel()
	parseErr := &stations.ParseError{Line: 3, Text: "x", Cause: stations.ErrMissingSeparator}
	cause := &apperrors.WorkerError{Chunk: 0, Mode: "multi-threaded", Cause: parseErr}
	w := NewStationsWorkload(stubStations{err: cause}, "measurements.txt", nil, 1)

	_, err := w.Run(context.Background(), dispatch.MultiThreaded)
	var inputErr apperrors.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "measurements.txt", inputErr.Source)
	assert.ErrorIs(t, err, stations.ErrMissingSeparator)
	assert.Equal(t, apperrors.ExitErrorInput, apperrors.ExitCode(err))

	other := errors.New("start worker: no such file")
	_, err = NewStationsWorkload(stubStations{err: other}, "m", nil, 1).Run(context.Background(), dispatch.MultiProcess)
	assert.Equal(t, other, err)
}

func TestEscapeWorkloadRunsDispatcher(t *testing.T) {
	t.Parallel()
	grid, err := escape.NewGrid(escape.Params{MinX: -2, MaxX: 1, MinY: -1.5, MaxY: 1.5, Density: 8, MaxIter: 20})
	require.NoError(t, err)
	want, err := escape.Evaluate(grid)
	require.NoError(t, err)

	out, err := NewEscapeWorkload(dispatch.New(), grid, 3).Run(context.Background(), dispatch.MultiThreaded)
	require.NoError(t, err)
	assert.True(t, want.Equal(out.Grid))
	assert.Equal(t, BufferDigest(want), out.Digest)
	assert.Equal(t, 64, out.Items)
}

func TestBufferDigestDependsOnShape(t *testing.T) {
	t.Parallel()
	a := escape.NewBuffer(2, 3)
	b := escape.NewBuffer(3, 2)
	assert.NotEqual(t, BufferDigest(a), BufferDigest(b))

	c := a.Clone()
	c.Set(1, 2, 9)
	assert.NotEqual(t, BufferDigest(a), BufferDigest(c))
	assert.Equal(t, BufferDigest(a), BufferDigest(a.Clone()))
}
