// Package tui renders a live benchmark dashboard with bubbletea. It is an
// alternative to the spinner in package cli: the same orchestration runs
// underneath, with progress and results delivered as bubbletea messages.
package tui
