package stations

import "math"

// Stats is the running aggregate for one station. The zero value is not a
// valid aggregate; use NewStats for the first observation.
type Stats struct {
	Min   Tenths `json:"min"`
	Max   Tenths `json:"max"`
	Total Tenths `json:"total"`
	Count int64  `json:"count"`
}

// NewStats seeds an aggregate from the first observation of a station.
func NewStats(value Tenths) Stats {
	return Stats{Min: value, Max: value, Total: value, Count: 1}
}

// Observe extends the aggregate with one more value.
func (s *Stats) Observe(value Tenths) {
	s.Min = min(s.Min, value)
	s.Max = max(s.Max, value)
	s.Total += value
	s.Count++
}

// Merge returns the aggregate covering the observations of both s and o.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Min:   min(s.Min, o.Min),
		Max:   max(s.Max, o.Max),
		Total: s.Total + o.Total,
		Count: s.Count + o.Count,
	}
}

// Mean returns the arithmetic mean of the observed values, rounded to the
// nearest tenth.
func (s Stats) Mean() Tenths {
	return Tenths(math.Round(float64(s.Total) / float64(s.Count)))
}

// Result maps station names to their aggregates.
type Result map[string]Stats

// Observe records one value for name, creating the entry on first sighting.
func (r Result) Observe(name string, value Tenths) {
	if s, ok := r[name]; ok {
		s.Observe(value)
		r[name] = s
		return
	}
	r[name] = NewStats(value)
}
