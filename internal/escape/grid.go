// Package escape implements the escape-time workload: for every point c of a
// 2-D grid it counts the iterations of z = z² + c, starting from zero, before
// |z| exceeds 2.
package escape

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	apperrors "github.com/agbru/chunkbench/internal/errors"
)

// Fixed benchmark constants.
const (
	MaxIter = 1000
	MinX    = -2.0
	MaxX    = 1.0
	MinY    = -1.5
	MaxY    = 1.5
	Density = 1000
)

// Params describes the sampled region and the iteration cap.
type Params struct {
	MinX    float64 `json:"min_x"`
	MaxX    float64 `json:"max_x"`
	MinY    float64 `json:"min_y"`
	MaxY    float64 `json:"max_y"`
	Density int     `json:"density"`
	MaxIter int     `json:"max_iter"`
}

// DefaultParams returns the fixed benchmark grid.
func DefaultParams() Params {
	return Params{MinX: MinX, MaxX: MaxX, MinY: MinY, MaxY: MaxY, Density: Density, MaxIter: MaxIter}
}

// Validate rejects parameters that cannot describe a grid.
func (p Params) Validate() error {
	switch {
	case p.Density < 1:
		return apperrors.ValidationError{Field: "density", Message: fmt.Sprintf("must be at least 1, got %d", p.Density)}
	case p.MaxIter < 0:
		return apperrors.ValidationError{Field: "max_iter", Message: fmt.Sprintf("must be non-negative, got %d", p.MaxIter)}
	}
	return nil
}

// Grid holds the sampled axes. X indexes buffer rows, Y indexes columns.
type Grid struct {
	Params Params
	X      []float64
	Y      []float64
}

// NewGrid samples Density evenly spaced values on each axis, endpoints
// included.
func NewGrid(p Params) (Grid, error) {
	if err := p.Validate(); err != nil {
		return Grid{}, err
	}
	return Grid{
		Params: p,
		X:      linspace(p.MinX, p.MaxX, p.Density),
		Y:      linspace(p.MinY, p.MaxY, p.Density),
	}, nil
}

// Rows returns the buffer height for this grid.
func (g Grid) Rows() int { return len(g.X) }

// Cols returns the buffer width for this grid.
func (g Grid) Cols() int { return len(g.Y) }

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	axis := floats.Span(make([]float64, n), lo, hi)
	axis[n-1] = hi
	return axis
}
