package stations

import (
	"math"
	"strconv"
)

// MaxAbsValue bounds the magnitude of a measurement. It keeps the running
// total of a billion readings inside int64.
const MaxAbsValue = 1e9

// Tenths is a measurement in fixed point with one fractional digit. Totals
// are integer sums, so they do not depend on how lines were split into chunks
// or in which order partial results are merged.
type Tenths int64

// TenthsOf converts v to the nearest tenth, halves rounded away from zero.
func TenthsOf(v float64) Tenths {
	return Tenths(math.Round(v * 10))
}

// Float64 returns t as a float64.
func (t Tenths) Float64() float64 {
	return float64(t) / 10
}

// String renders t with exactly one fractional digit.
func (t Tenths) String() string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	return sign + strconv.FormatInt(int64(t/10), 10) + "." + strconv.FormatInt(int64(t%10), 10)
}
