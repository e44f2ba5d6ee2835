package orchestration

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/stations"
	"github.com/agbru/chunkbench/internal/worker"
)

// StationDispatcher runs the station workload. *dispatch.Dispatcher
// implements it.
type StationDispatcher interface {
	Stations(ctx context.Context, mode dispatch.Mode, lines []string, numChunks int) (stations.Result, error)
}

// GridDispatcher runs the escape-time workload. *dispatch.Dispatcher
// implements it.
type GridDispatcher interface {
	Escape(ctx context.Context, mode dispatch.Mode, grid escape.Grid, numChunks int) (*escape.Buffer, error)
}

// StationsWorkload aggregates a fixed set of measurement lines.
type StationsWorkload struct {
	d      StationDispatcher
	source string
	lines  []string
	chunks int
}

// NewStationsWorkload returns the station workload over lines read from
// source.
func NewStationsWorkload(d StationDispatcher, source string, lines []string, chunks int) *StationsWorkload {
	return &StationsWorkload{d: d, source: source, lines: lines, chunks: chunks}
}

// Name implements Workload.
func (w *StationsWorkload) Name() string { return string(worker.Stations) }

// Unit implements Workload.
func (w *StationsWorkload) Unit() string { return "lines" }

// Run implements Workload. Malformed lines are reported as an
// apperrors.InputError naming the source. The digest is taken over the
// formatted result, which is what the user compares.
func (w *StationsWorkload) Run(ctx context.Context, mode dispatch.Mode) (Output, error) {
	result, err := w.d.Stations(ctx, mode, w.lines, w.chunks)
	if err != nil {
		var parseErr *stations.ParseError
		if errors.As(err, &parseErr) {
			return Output{}, apperrors.InputError{Source: w.source, Cause: err}
		}
		return Output{}, err
	}
	return Output{
		Digest:   xxhash.Sum64String(stations.Format(result)),
		Items:    len(w.lines),
		Stations: result,
	}, nil
}

// EscapeWorkload evaluates a fixed grid.
type EscapeWorkload struct {
	d      GridDispatcher
	grid   escape.Grid
	chunks int
}

// NewEscapeWorkload returns the escape-time workload over grid.
func NewEscapeWorkload(d GridDispatcher, grid escape.Grid, chunks int) *EscapeWorkload {
	return &EscapeWorkload{d: d, grid: grid, chunks: chunks}
}

// Name implements Workload.
func (w *EscapeWorkload) Name() string { return string(worker.Escape) }

// Unit implements Workload.
func (w *EscapeWorkload) Unit() string { return "cells" }

// Run implements Workload.
func (w *EscapeWorkload) Run(ctx context.Context, mode dispatch.Mode) (Output, error) {
	buf, err := w.d.Escape(ctx, mode, w.grid, w.chunks)
	if err != nil {
		return Output{}, err
	}
	return Output{Digest: BufferDigest(buf), Items: len(buf.Cells), Grid: buf}, nil
}

// BufferDigest hashes the buffer shape and its cells in little-endian order.
func BufferDigest(b *escape.Buffer) uint64 {
	h := xxhash.New()
	var word [8]byte
	binary.LittleEndian.PutUint32(word[:4], uint32(b.Rows))
	binary.LittleEndian.PutUint32(word[4:], uint32(b.Cols))
	h.Write(word[:])
	for _, c := range b.Cells {
		binary.LittleEndian.PutUint32(word[:4], uint32(c))
		h.Write(word[:4])
	}
	return h.Sum64()
}
