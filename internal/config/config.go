// Package config parses and validates the command-line configuration of the
// benchmark harness. Values come from flags, then CHUNKBENCH_* environment
// variables for flags that were not set, then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/stations"
	"github.com/agbru/chunkbench/internal/worker"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CHUNKBENCH_"

// AllModes selects every execution mode.
const AllModes = "all"

// Default values.
const (
	DefaultRuns     = 1
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Workload is the benchmark to run: "obrc" or "mandelbrot".
	Workload string
	// Mode is an execution mode name or "all".
	Mode string
	// NumChunks is the number of chunks, and so of workers, per run.
	NumChunks int
	// Input is the measurements file for the obrc workload.
	Input string
	// Runs is the number of repetitions per mode.
	Runs int
	// OutputFile receives the mandelbrot grid as a PGM image when set.
	OutputFile string
	// MetricsFile receives the Prometheus metrics after the runs when set.
	MetricsFile string
	// Quiet suppresses the spinner, configuration and summary.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI shows the interactive dashboard instead of the spinner.
	TUI bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// Validate checks the configuration for semantic errors. Every failure is an
// apperrors.ConfigError so it maps to the configuration exit code.
//
// Returns:
//   - error: An error if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate() error {
	switch c.Workload {
	case string(worker.Stations), string(worker.Escape):
	case "":
		return apperrors.NewConfigError("missing workload (want obrc or mandelbrot)")
	default:
		return apperrors.NewConfigError("unknown workload %q (want obrc or mandelbrot)", c.Workload)
	}
	if c.Mode == "" {
		return apperrors.NewConfigError("missing mode (want single, multi-process, multi-threaded or all)")
	}
	if c.Mode != AllModes {
		if _, err := dispatch.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if c.NumChunks <= 0 {
		return apperrors.NewConfigError("--num-chunks must be positive, got %d", c.NumChunks)
	}
	if c.Runs < 1 {
		return apperrors.NewConfigError("--runs must be at least 1, got %d", c.Runs)
	}
	if c.OutputFile != "" && c.Workload != string(worker.Escape) {
		return apperrors.NewConfigError("--output is only supported by the mandelbrot workload")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid --log-level: %v", err)
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig.
//
// Positional arguments (workload, then mode) may appear before, between or
// after flags. Environment overrides are applied only for flags absent from
// the command line; the result is validated unless --version was given.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: The writer for usage and flag errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := AppConfig{}

	fs.IntVar(&config.NumChunks, "num-chunks", DefaultNumChunks(), "Number of chunks (workers) per run.")
	fs.StringVar(&config.Input, "input", stations.DefaultInput, "Measurements file for the obrc workload.")
	fs.IntVar(&config.Runs, "runs", DefaultRuns, "Repetitions per mode.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the mandelbrot grid to this file as a PGM image.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the runs.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the interactive dashboard while the runs execute.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error, disabled).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version.")
	fs.Usage = func() { printUsage(fs, programName) }

	positionals, err := parseInterleaved(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return config, err
		}
		return config, apperrors.NewConfigError("%v", err)
	}
	applyEnvOverrides(&config, fs)

	if config.ShowVersion {
		return config, nil
	}
	if len(positionals) > 2 {
		return config, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(positionals[2:], " "))
	}
	if len(positionals) > 0 {
		config.Workload = strings.ToLower(positionals[0])
	}
	if len(positionals) > 1 {
		config.Mode = strings.ToLower(positionals[1])
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// parseInterleaved runs fs.Parse repeatedly, collecting the positional
// arguments the flag package stops at. "--" ends flag parsing.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positionals, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positionals, rest...), nil
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <obrc|mandelbrot> <single|multi-process|multi-threaded|all>\n\n", programName)
	fmt.Fprintf(out, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEvery flag can also be set with a %s<NAME> environment variable,\n", EnvPrefix)
	fmt.Fprintf(out, "e.g. %sNUM_CHUNKS=4. Command-line flags take precedence.\n", EnvPrefix)
}
