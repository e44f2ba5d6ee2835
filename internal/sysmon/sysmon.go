// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent   float64 // 0.0 .. 100.0
	MemPercent   float64 // 0.0 .. 100.0
	LogicalCPUs  int
	PhysicalCPUs int
	TotalMemory  uint64 // bytes
}

// Sample collects a single system-wide snapshot without a deadline.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields that cannot be read
// are left at zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPUs = n
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		s.PhysicalCPUs = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.TotalMemory = vmem.Total
	}
	return s
}
