package stations

import (
	"slices"
	"strings"
)

// Combine folds per-chunk results into one. The inputs are not modified.
// Merging is associative and commutative, so the order of results does not
// change the combined aggregates.
func Combine(results ...Result) Result {
	combined := make(Result)
	for _, result := range results {
		for name, stats := range result {
			if seen, ok := combined[name]; ok {
				combined[name] = seen.Merge(stats)
			} else {
				combined[name] = stats
			}
		}
	}
	return combined
}

// Format renders the result as "{name=min/max/mean, ...}" with one decimal
// place, entries in lexicographic order.
func Format(r Result) string {
	entries := make([]string, 0, len(r))
	for name, s := range r {
		entries = append(entries, name+"="+s.Min.String()+"/"+s.Max.String()+"/"+s.Mean().String())
	}
	// Entries sort as rendered strings. This is name order unless one name is
	// a prefix of another and the longer one continues with a byte below '='.
	slices.Sort(entries)
	return "{" + strings.Join(entries, ", ") + "}"
}
