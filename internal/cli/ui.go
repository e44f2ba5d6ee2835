package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"

	"github.com/agbru/chunkbench/internal/format"
	"github.com/agbru/chunkbench/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix locks the spinner while changing the suffix, since the
// animation goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// IsTerminal reports whether w is a terminal. Anything but an *os.File is
// not.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisplayProgress shows a spinner with the current mode, run counter, overall
// progress bar and ETA until progressChan is closed.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - progressChan: One update per finished run.
//   - totalRuns: The number of runs planned.
//   - out: The writer for the spinner, normally stderr.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalRuns int, out io.Writer) {
	defer wg.Done()
	if totalRuns <= 0 {
		for range progressChan {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	progress := format.NewRunProgress(totalRuns)
	s.UpdateSuffix(" " + FormatProgressSuffix(progress, orchestration.ProgressUpdate{}))
	s.Start()
	defer s.Stop()

	for update := range progressChan {
		progress.Complete(update.Elapsed)
		s.UpdateSuffix(" " + FormatProgressSuffix(progress, update))
	}
}

// FormatProgressSuffix renders the spinner text after update.
func FormatProgressSuffix(progress *format.RunProgress, update orchestration.ProgressUpdate) string {
	done, total := progress.Done()
	bar := format.FormatProgressBarWithETA(progress.Fraction(), progress.ETA(), ProgressBarWidth)
	if update.Mode == "" {
		return fmt.Sprintf("starting %d runs %s", total, bar)
	}
	return fmt.Sprintf("%s run %d/%d (%d/%d) %s", update.Mode, update.Run, update.Runs, done, total, bar)
}
