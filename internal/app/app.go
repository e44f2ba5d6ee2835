// Package app wires configuration, the dispatcher, orchestration and the CLI
// presentation into the chunkbench application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/chunkbench/internal/cli"
	"github.com/agbru/chunkbench/internal/config"
	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/escape"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/ui"
)

// Application represents the chunkbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	launcher   dispatch.Launcher
	logger     logging.Logger
	gridParams escape.Params
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLauncher sets how multi-process workers are started. By default the
// running binary is re-executed.
func WithLauncher(l dispatch.Launcher) AppOption {
	return func(a *Application) { a.launcher = l }
}

// WithLogger replaces the console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// WithGridParams replaces the fixed escape-time grid, e.g. with a smaller
// one in tests.
func WithGridParams(p escape.Params) AppOption {
	return func(a *Application) { a.gridParams = p }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, gridParams: escape.DefaultParams()}
	for _, opt := range opts {
		opt(app)
	}

	programName := "chunkbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application and returns the process exit code. Results
// are written to out; everything else goes to ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), a.ErrWriter)
	}
	zerolog.SetGlobalLevel(level)
	if a.logger == nil {
		a.logger = logging.NewConsoleLogger(a.ErrWriter, "chunkbench", level)
	}
	ui.InitTheme(a.Config.NoColor || !cli.IsTerminal(a.ErrWriter))

	return a.runBenchmark(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
