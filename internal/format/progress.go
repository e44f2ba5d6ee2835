package format

import (
	"fmt"
	"strings"
	"time"
)

// MaxETA caps run-time estimates; anything longer is displayed as this value.
const MaxETA = 24 * time.Hour

// ProgressBar renders progress (clamped to [0,1]) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] pct% ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}

// RunProgress tracks completed benchmark runs out of a known total and
// estimates the remaining time from the mean duration of finished runs.
// It is not safe for concurrent use.
type RunProgress struct {
	total   int
	done    int
	elapsed time.Duration
}

// NewRunProgress tracks total runs.
func NewRunProgress(total int) *RunProgress {
	return &RunProgress{total: total}
}

// Complete records one finished run that took d.
func (p *RunProgress) Complete(d time.Duration) {
	if p.done < p.total {
		p.done++
	}
	p.elapsed += d
}

// Fraction returns the completed share in [0,1]. An empty plan is complete.
func (p *RunProgress) Fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

// ETA estimates the remaining time. It returns 0 before the first run
// completes.
func (p *RunProgress) ETA() time.Duration {
	if p.done == 0 {
		return 0
	}
	mean := p.elapsed / time.Duration(p.done)
	return min(mean*time.Duration(p.total-p.done), MaxETA)
}

// Done returns the completed and total run counts.
func (p *RunProgress) Done() (int, int) { return p.done, p.total }
