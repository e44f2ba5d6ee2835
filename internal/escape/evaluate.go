package escape

import (
	"fmt"
	"math/cmplx"

	"github.com/agbru/chunkbench/internal/partition"
)

// Iterations returns the first iteration index at which |z| exceeds 2 for
// c = x + yi, or maxIter if it never does.
func Iterations(x, y float64, maxIter int) int32 {
	c := complex(x, y)
	var z complex128
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		if cmplx.Abs(z) > 2 {
			return int32(i)
		}
	}
	return int32(maxIter)
}

// EvaluateChunk fills the rows×cols rectangle of dst. Cells outside the
// rectangle are left untouched, so chunks with disjoint rectangles may share
// one destination.
func EvaluateChunk(g Grid, rows, cols partition.Range, dst *Buffer) error {
	if dst.Rows != g.Rows() || dst.Cols != g.Cols() {
		return fmt.Errorf("buffer shape %dx%d does not match grid %dx%d", dst.Rows, dst.Cols, g.Rows(), g.Cols())
	}
	if !dst.contains(rows, cols) {
		return fmt.Errorf("chunk rows %v cols %v outside %dx%d buffer", rows, cols, dst.Rows, dst.Cols)
	}
	for i := rows.Start; i < rows.End; i++ {
		x := g.X[i]
		for j := cols.Start; j < cols.End; j++ {
			dst.Set(i, j, Iterations(x, g.Y[j], g.Params.MaxIter))
		}
	}
	return nil
}

// Evaluate computes the whole grid into a new buffer.
func Evaluate(g Grid) (*Buffer, error) {
	dst := NewBuffer(g.Rows(), g.Cols())
	if err := EvaluateChunk(g, partition.Full(g.Rows()), partition.Full(g.Cols()), dst); err != nil {
		return nil, err
	}
	return dst, nil
}
