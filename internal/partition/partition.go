// Package partition splits a one-dimensional domain into contiguous chunks.
//
// Every partition of a domain of size n into c chunks has exactly c ranges,
// which are contiguous, disjoint and cover [0, n). When c <= n each range holds
// n/c elements and the last one absorbs the remainder. When c > n the first n
// ranges hold one element each and the rest are empty.
package partition

import (
	"fmt"

	apperrors "github.com/agbru/chunkbench/internal/errors"
)

// Range is a half-open index range [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.End <= r.Start }

// String renders the range as "[start,end)".
func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Full returns the single range covering [0, size).
func Full(size int) Range { return Range{Start: 0, End: size} }

// ValidateCount rejects chunk counts that cannot produce a partition.
func ValidateCount(count int) error {
	if count <= 0 {
		return apperrors.NewConfigError("num_chunks must be a positive integer, got %d", count)
	}
	return nil
}

// Ranges partitions [0, size) into count ranges.
func Ranges(size, count int) ([]Range, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, apperrors.ValidationError{Field: "size", Message: fmt.Sprintf("must be non-negative, got %d", size)}
	}

	ranges := make([]Range, count)
	if count > size {
		for i := range ranges {
			start := min(i, size)
			ranges[i] = Range{Start: start, End: min(i+1, size)}
		}
		return ranges, nil
	}

	chunk := size / count
	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[count-1].End = size
	return ranges, nil
}

// Split partitions values into count sub-slices whose boundaries match
// Ranges(len(values), count). The sub-slices alias values.
func Split[T any](values []T, count int) ([][]T, error) {
	ranges, err := Ranges(len(values), count)
	if err != nil {
		return nil, err
	}
	chunks := make([][]T, len(ranges))
	for i, r := range ranges {
		chunks[i] = values[r.Start:r.End:r.End]
	}
	return chunks, nil
}
