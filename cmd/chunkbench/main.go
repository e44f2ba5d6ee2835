package main

import (
	"context"
	"os"

	"github.com/agbru/chunkbench/internal/app"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/worker"
)

func main() {
	// Multi-process runs re-execute this binary as a chunk worker.
	if worker.Requested() {
		os.Exit(worker.Main(os.Stdin, os.Stdout, os.Stderr))
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleRunError(err, os.Stderr))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
