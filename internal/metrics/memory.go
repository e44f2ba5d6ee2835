package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryDelta is the difference between two snapshots taken around a run.
type MemoryDelta struct {
	Allocated uint64 // bytes allocated during the run
	GCCycles  uint32
	PauseNs   uint64
	PeakSys   uint64 // Sys at the end of the run
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns what changed between before and a fresh snapshot. Only the
// parent process is measured; worker processes have their own runtimes.
func (mc *MemoryCollector) Since(before MemorySnapshot) MemoryDelta {
	after := mc.Snapshot()
	return MemoryDelta{
		Allocated: after.TotalAlloc - before.TotalAlloc,
		GCCycles:  after.NumGC - before.NumGC,
		PauseNs:   after.PauseTotalNs - before.PauseTotalNs,
		PeakSys:   after.Sys,
	}
}
