package partition

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/chunkbench/internal/errors"
)

func TestRanges(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		size  int
		count int
		want  []Range
	}{
		{"even split", 6, 3, []Range{{0, 2}, {2, 4}, {4, 6}}},
		{"remainder goes to last", 7, 3, []Range{{0, 2}, {2, 4}, {4, 7}}},
		{"single chunk", 5, 1, []Range{{0, 5}}},
		{"empty domain", 0, 2, []Range{{0, 0}, {0, 0}}},
		{"more chunks than elements", 3, 5, []Range{{0, 1}, {1, 2}, {2, 3}, {3, 3}, {3, 3}}},
		{"one element per chunk", 4, 4, []Range{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Ranges(tt.size, tt.count)
			if err != nil {
				t.Fatalf("Ranges(%d, %d) unexpected error: %v", tt.size, tt.count, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Ranges(%d, %d) = %v, want %v", tt.size, tt.count, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRangesRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	for _, count := range []int{0, -1} {
		_, err := Ranges(10, count)
		var configErr apperrors.ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("Ranges(10, %d) error = %v, want ConfigError", count, err)
		}
	}

	_, err := Ranges(-1, 2)
	var validationErr apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Ranges(-1, 2) error = %v, want ValidationError", err)
	}
}

func TestSplitMatchesRanges(t *testing.T) {
	t.Parallel()
	values := []string{"a", "b", "c", "d", "e", "f", "g"}
	chunks, err := Split(values, 3)
	if err != nil {
		t.Fatal(err)
	}
	ranges, _ := Ranges(len(values), 3)
	for i, chunk := range chunks {
		if len(chunk) != ranges[i].Len() {
			t.Errorf("chunk %d has %d values, range %v", i, len(chunk), ranges[i])
		}
		for k, v := range chunk {
			if v != values[ranges[i].Start+k] {
				t.Errorf("chunk %d[%d] = %q, want %q", i, k, v, values[ranges[i].Start+k])
			}
		}
	}

	// Appending to a chunk must not clobber its neighbour.
	chunks[0] = append(chunks[0], "x")
	if values[2] != "c" {
		t.Errorf("append to chunk 0 overwrote the backing slice: %v", values)
	}
}

func TestSplitRejectsZeroCount(t *testing.T) {
	t.Parallel()
	if _, err := Split([]int{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero chunk count")
	}
}

// TestRanges_PropertyBased checks the partition invariants over random
// (size, count) pairs.
func TestRanges_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("ranges are contiguous, disjoint, cover [0,size) and number count", prop.ForAll(
		func(size, count int) bool {
			ranges, err := Ranges(size, count)
			if err != nil || len(ranges) != count {
				return false
			}
			next := 0
			for _, r := range ranges {
				if r.Start != next || r.End < r.Start {
					return false
				}
				next = r.End
			}
			return next == size
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 300),
	))

	properties.Property("count > size yields size non-empty ranges then empty ones", prop.ForAll(
		func(size, extra int) bool {
			count := size + extra
			ranges, err := Ranges(size, count)
			if err != nil || len(ranges) != count {
				return false
			}
			for i, r := range ranges {
				if (i < size) == r.Empty() {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 200),
		gen.IntRange(1, 50),
	))

	properties.Property("Split and Ranges agree on boundaries", prop.ForAll(
		func(size, count int) bool {
			values := make([]int, size)
			for i := range values {
				values[i] = i
			}
			chunks, err := Split(values, count)
			if err != nil {
				return false
			}
			ranges, _ := Ranges(size, count)
			for i, chunk := range chunks {
				if len(chunk) != ranges[i].Len() {
					return false
				}
				if len(chunk) > 0 && chunk[0] != ranges[i].Start {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}
