package stations

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// DefaultInput is the measurements file read when no path is configured.
const DefaultInput = "measurements.txt"

// maxLineLength bounds a single measurement line.
const maxLineLength = 1 << 20

// LoadLines reads the whole file into memory, one element per line, without
// line terminators.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open measurements: %w", err)
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines reads every line from r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read measurements: %w", err)
	}
	return lines, nil
}
