// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatProgressSuffix].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteGridToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/orchestration"
	"github.com/agbru/chunkbench/internal/stations"
	"github.com/agbru/chunkbench/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the grid (empty for no file output).
	OutputFile string
	// MaxIter scales the grey levels of the saved grid.
	MaxIter int
	// Quiet mode suppresses everything but the result.
	Quiet bool
}

// WriteGridToFile writes a grid buffer to path as a PGM image, creating
// parent directories as needed.
//
// Parameters:
//   - path: The destination file.
//   - b: The grid buffer.
//   - maxIter: The iteration cap, used as the maximum grey value.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteGridToFile(path string, b *escape.Buffer, maxIter int) (err error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	if err := escape.WritePGM(w, b, maxIter); err != nil {
		return fmt.Errorf("failed to write grid: %w", err)
	}
	return w.Flush()
}

// DisplayStationResult prints the formatted station line. This is the only
// output the harness writes to stdout.
func DisplayStationResult(out io.Writer, r stations.Result) {
	fmt.Fprintln(out, stations.Format(r))
}

// DisplayResult emits a benchmark result. Station results go to out; the
// grid is written to config.OutputFile when set, with a confirmation on
// errOut unless quiet.
//
// Parameters:
//   - out: The result writer (stdout).
//   - errOut: The writer for human-oriented messages (stderr).
//   - result: The reference result of the benchmark.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResult(out, errOut io.Writer, result orchestration.StrategyResult, config OutputConfig) error {
	switch {
	case result.Output.Stations != nil:
		DisplayStationResult(out, result.Output.Stations)
	case result.Output.Grid != nil:
		grid := result.Output.Grid
		if config.OutputFile != "" {
			if err := WriteGridToFile(config.OutputFile, grid, config.MaxIter); err != nil {
				return err
			}
			if !config.Quiet {
				fmt.Fprintf(errOut, "\n%s✓ Grid saved to: %s%s%s\n",
					ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
			}
		} else if !config.Quiet {
			fmt.Fprintf(errOut, "\nGrid: %dx%d cells, digest %016x.\n",
				grid.Rows, grid.Cols, result.Output.Digest)
		}
	}
	return nil
}
