package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/chunkbench/internal/config"
	"github.com/agbru/chunkbench/internal/dispatch"
	"github.com/agbru/chunkbench/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user: the workload, its input, the chunk count and the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for the configuration block.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Workload %s%s%s", ui.ColorMagenta(), cfg.Workload, ui.ColorReset())
	if cfg.Workload == "obrc" {
		fmt.Fprintf(out, " on %s%s%s", ui.ColorYellow(), cfg.Input, ui.ColorReset())
	}
	fmt.Fprintf(out, " with %s%d%s chunks, %d run(s) per mode.\n",
		ui.ColorCyan(), cfg.NumChunks, ui.ColorReset(), cfg.Runs)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays which strategies will run.
//
// Parameters:
//   - modes: The modes that will be executed.
//   - out: The writer for the line.
func PrintExecutionMode(modes []dispatch.Mode, out io.Writer) {
	var modeDesc string
	if len(modes) > 1 {
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = string(m)
		}
		modeDesc = "Sequential comparison of " + strings.Join(names, ", ")
	} else if len(modes) == 1 {
		modeDesc = fmt.Sprintf("Single strategy %s%s%s", ui.ColorGreen(), modes[0], ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
