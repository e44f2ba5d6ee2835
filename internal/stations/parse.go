package stations

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Separator splits a station name from its measurement.
const Separator = ";"

var (
	// ErrMissingSeparator is returned for a line without Separator.
	ErrMissingSeparator = errors.New("missing ';' separator")
	// ErrExtraSeparator is returned for a line with more than one Separator.
	ErrExtraSeparator = errors.New("more than one ';' separator")
	// ErrOutOfRange is returned for a value that is not finite or whose
	// magnitude exceeds MaxAbsValue.
	ErrOutOfRange = errors.New("value out of range")
)

// ParseError describes a line that could not be parsed.
type ParseError struct {
	// Line is the 1-based line number within the whole input.
	Line int
	// Text is the offending line without its terminator.
	Text string
	// Cause is ErrMissingSeparator, ErrExtraSeparator, ErrOutOfRange or a
	// strconv error.
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ParseLine splits one measurement line into its name and value. Values with
// more than one fractional digit are rounded to the nearest tenth.
func ParseLine(line string) (string, Tenths, error) {
	line = strings.TrimRight(line, "\r\n")
	name, raw, ok := strings.Cut(line, Separator)
	if !ok {
		return "", 0, ErrMissingSeparator
	}
	if strings.Contains(raw, Separator) {
		return "", 0, ErrExtraSeparator
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, err
	}
	if math.IsNaN(value) || math.Abs(value) > MaxAbsValue {
		return "", 0, ErrOutOfRange
	}
	return name, TenthsOf(value), nil
}

// ParseLines aggregates every line into the result mapping. It stops at the
// first malformed line.
func ParseLines(lines []string, into Result) error {
	return ParseLinesAt(lines, 0, into)
}

// ParseLinesAt is ParseLines for a chunk that starts at the given zero-based
// line offset within the whole input, so errors report absolute line numbers.
func ParseLinesAt(lines []string, offset int, into Result) error {
	for i, line := range lines {
		name, value, err := ParseLine(line)
		if err != nil {
			return &ParseError{Line: offset + i + 1, Text: strings.TrimRight(line, "\r\n"), Cause: err}
		}
		into.Observe(name, value)
	}
	return nil
}
