package dispatch

import (
	"strings"

	apperrors "github.com/agbru/chunkbench/internal/errors"
)

// Mode is an execution strategy.
type Mode string

const (
	// Single runs the workload once over the whole domain.
	Single Mode = "single"
	// MultiProcess runs one child process per chunk.
	MultiProcess Mode = "multi-process"
	// MultiThreaded runs one goroutine per chunk.
	MultiThreaded Mode = "multi-threaded"
)

// Modes lists every strategy in presentation order.
func Modes() []Mode {
	return []Mode{Single, MultiProcess, MultiThreaded}
}

// ParseMode resolves a mode name. Underscores are accepted in place of
// hyphens.
func ParseMode(name string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(name), "_", "-"))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", unknownMode(name)
}

func unknownMode(name string) error {
	return apperrors.NewConfigError("unknown mode %q (want single, multi-process or multi-threaded)", name)
}
