package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/chunkbench/internal/dispatch"
	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/format"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/orchestration"
	"github.com/agbru/chunkbench/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	ProgressBarWidth = 40
	modeColumnWidth  = 16
	sampleInterval   = 500 * time.Millisecond
)

// modeRow is the dashboard line of one execution mode.
type modeRow struct {
	mode     dispatch.Mode
	finished int
	elapsed  time.Duration
	err      error
	final    *orchestration.StrategyResult
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	keymap  KeyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model

	workload  string
	runs      int
	rows      []modeRow
	runStats  *format.RunProgress
	sys       SysStatsMsg
	startTime time.Time
	endTime   time.Time

	cancel   context.CancelFunc
	err      error
	done     bool
	exitCode int
}

// NewModel creates the dashboard for a benchmark of workload under modes.
// cancel is invoked when the user quits.
func NewModel(workload string, modes []dispatch.Mode, runs int, cancel context.CancelFunc) Model {
	runs = max(runs, 1)
	rows := make([]modeRow, len(modes))
	for i, m := range modes {
		rows[i] = modeRow{mode: m}
	}
	return Model{
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(ProgressBarWidth), progress.WithoutPercentage()),
		workload:  workload,
		runs:      runs,
		rows:      rows,
		runStats:  format.NewRunProgress(len(modes) * runs),
		startTime: time.Now(),
		cancel:    cancel,
	}
}

// ExitCode returns the exit code reported by the benchmark.
func (m Model) ExitCode() int { return m.exitCode }

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.applyProgress(msg.Update)
		return m, nil

	case ComparisonResultsMsg:
		for i := range msg.Results {
			for j := range m.rows {
				if m.rows[j].mode == msg.Results[i].Mode {
					m.rows[j].final = &msg.Results[i]
				}
			}
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case BenchmarkCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.endTime = time.Now()
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = msg
		return m, nil
	}
	return m, nil
}

func (m *Model) applyProgress(u orchestration.ProgressUpdate) {
	for i := range m.rows {
		if m.rows[i].mode != u.Mode {
			continue
		}
		row := &m.rows[i]
		row.finished = u.Run
		row.elapsed += u.Elapsed
		if u.Err != nil {
			row.err = u.Err
		}
	}
	m.runStats.Complete(u.Elapsed)
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	elapsed := time.Since(m.startTime)
	if !m.endTime.IsZero() {
		elapsed = m.endTime.Sub(m.startTime)
	}
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("chunkbench "+m.workload),
		mutedStyle.Render(fmt.Sprintf("| Elapsed: %s | CPU %.0f%% | MEM %.0f%%",
			format.FormatExecutionDuration(elapsed), m.sys.CPUPercent, m.sys.MemPercent)))

	indicator := m.spinner.View()
	if m.done {
		indicator = " "
	}
	done, total := m.runStats.Done()
	fmt.Fprintf(&b, "%s %s %d/%d runs, ETA %s\n\n", indicator, m.bar.ViewAs(m.runStats.Fraction()),
		done, total, format.FormatETA(m.runStats.ETA()))

	for _, row := range m.rows {
		fmt.Fprintf(&b, "  %-*s %d/%d  %s\n", modeColumnWidth, row.mode, row.finished, m.runs, m.rowStatus(row))
	}

	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", errorStyle.Render("Error: "+m.err.Error()))
	}
	if !m.done {
		fmt.Fprintf(&b, "\n%s\n", m.help.View(m.keymap))
	}
	return b.String()
}

func (m Model) rowStatus(row modeRow) string {
	switch {
	case row.err != nil:
		return errorStyle.Render("failed")
	case row.final != nil && row.final.Err == nil:
		return successStyle.Render(fmt.Sprintf("mean %s, best %s",
			format.FormatExecutionDuration(row.final.Mean()), format.FormatExecutionDuration(row.final.Best())))
	case row.finished >= m.runs:
		return successStyle.Render(format.FormatExecutionDuration(row.elapsed / time.Duration(m.runs)))
	case row.finished > 0:
		return runningStyle.Render("running")
	default:
		return mutedStyle.Render("pending")
	}
}

// Run executes the benchmark behind the dashboard and returns the reference
// result with the exit code. The dashboard is drawn inline on out; the
// result itself is left to the caller.
func Run(ctx context.Context, w orchestration.Workload, modes []dispatch.Mode, runs int, opts orchestration.PresentationOptions, logger logging.Logger, out io.Writer) (orchestration.StrategyResult, int) {
	// Rebuild styles from the current ui theme (set by the app via InitTheme).
	initStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ref := &programRef{}
	p := tea.NewProgram(NewModel(w.Name(), modes, runs, cancel), tea.WithOutput(out), tea.WithContext(ctx))
	ref.SetProgram(p)

	type outcome struct {
		reference orchestration.StrategyResult
		exitCode  int
	}
	finished := make(chan outcome, 1)
	go func() {
		reporter := &ProgressReporter{ref: ref}
		presenter := &ResultPresenter{ref: ref}
		results := orchestration.ExecuteStrategies(ctx, w, modes, runs, reporter, logger, io.Discard)
		reference, code := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)
		ref.Send(BenchmarkCompleteMsg{ExitCode: code})
		finished <- outcome{reference: reference, exitCode: code}
	}()

	_, err := p.Run()
	if err != nil {
		cancel()
	}
	o := <-finished
	if err != nil && o.exitCode == apperrors.ExitSuccess {
		logger.Error("dashboard failed", err)
	}
	return o.reference, o.exitCode
}

// tickCmd returns a command that sends a TickMsg after sampleInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}
