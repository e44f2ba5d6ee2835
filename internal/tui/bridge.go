package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/format"
	"github.com/agbru/chunkbench/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe). It is a no-op
// before SetProgram and returns immediately once the program has exited.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// ProgressReporter implements orchestration.ProgressReporter by forwarding
// every update to the dashboard.
type ProgressReporter struct {
	ref *programRef
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*ProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends a ProgressMsg per
// update.
func (t *ProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		t.ref.Send(ProgressMsg{Update: update})
	}
}

// ResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler by sending messages to the dashboard instead of
// writing to a stream.
type ResultPresenter struct {
	ref *programRef
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = (*ResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*ResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*ResultPresenter)(nil)
)

// PresentComparisonTable sends the comparison results to the dashboard.
func (t *ResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// FormatDuration delegates to the shared formatter.
func (t *ResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an error message to the dashboard and returns the exit
// code.
func (t *ResultPresenter) HandleError(err error, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err})
	return apperrors.ExitCode(err)
}
