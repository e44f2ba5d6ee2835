// Package format holds the plain-text formatting helpers shared by the CLI
// presenter and the progress display: durations, ETAs, progress bars, counts
// and throughputs.
package format
