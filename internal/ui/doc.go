// Package ui holds the color themes shared by the spinner output, the
// comparison table and the dashboard. NO_COLOR and --no-color select the
// colorless theme; every ANSI helper then returns an empty string.
package ui
