package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/chunkbench/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initStyles.
var (
	titleStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	runningStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again after the application has applied --no-color.
func initStyles() {
	t := ui.GetCurrentTheme()
	if t.Name == ui.NoColorTheme.Name {
		plain := lipgloss.NewStyle()
		titleStyle, mutedStyle, successStyle, errorStyle, runningStyle = plain.Bold(true), plain, plain, plain, plain
		return
	}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
}
