package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatNumberString inserts thousands separators into a decimal integer
// string. A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return FormatNumberString(strconv.Itoa(n))
}

// FormatThroughput renders items processed per second, e.g. "1.25M lines/s".
// A zero duration yields "-".
func FormatThroughput(items int, d time.Duration, unit string) string {
	if d <= 0 {
		return "-"
	}
	rate := float64(items) / d.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2fG %s/s", rate/1e9, unit)
	case rate >= 1e6:
		return fmt.Sprintf("%.2fM %s/s", rate/1e6, unit)
	case rate >= 1e3:
		return fmt.Sprintf("%.2fk %s/s", rate/1e3, unit)
	}
	return fmt.Sprintf("%.0f %s/s", rate, unit)
}
