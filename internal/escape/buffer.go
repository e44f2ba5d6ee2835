package escape

import (
	"fmt"
	"slices"

	"github.com/agbru/chunkbench/internal/partition"
)

// CellSize is the size in bytes of one buffer cell.
const CellSize = 4

// Buffer is a row-major matrix of iteration counts. Cell (i, j) lives at
// Cells[i*Cols+j].
type Buffer struct {
	Cells []int32
	Rows  int
	Cols  int
}

// NewBuffer allocates a zeroed rows×cols buffer.
func NewBuffer(rows, cols int) *Buffer {
	return &Buffer{Cells: make([]int32, rows*cols), Rows: rows, Cols: cols}
}

// WrapBuffer views existing storage, e.g. a shared-memory region, as a
// buffer. The storage must hold exactly rows×cols cells.
func WrapBuffer(cells []int32, rows, cols int) (*Buffer, error) {
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("buffer storage holds %d cells, want %dx%d", len(cells), rows, cols)
	}
	return &Buffer{Cells: cells, Rows: rows, Cols: cols}, nil
}

// At returns cell (i, j).
func (b *Buffer) At(i, j int) int32 { return b.Cells[i*b.Cols+j] }

// Set stores cell (i, j).
func (b *Buffer) Set(i, j int, v int32) { b.Cells[i*b.Cols+j] = v }

// Clone copies the buffer into freshly allocated storage.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{Cells: slices.Clone(b.Cells), Rows: b.Rows, Cols: b.Cols}
}

// Equal reports whether both buffers have the same shape and cells.
func (b *Buffer) Equal(o *Buffer) bool {
	return b.Rows == o.Rows && b.Cols == o.Cols && slices.Equal(b.Cells, o.Cells)
}

// contains reports whether the rectangle rows×cols lies inside the buffer.
func (b *Buffer) contains(rows, cols partition.Range) bool {
	return rows.Start >= 0 && rows.End <= b.Rows && rows.Start <= rows.End &&
		cols.Start >= 0 && cols.End <= b.Cols && cols.Start <= cols.End
}
