package sysmon

import (
	"context"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSampleContext_ReportsHardware(t *testing.T) {
	s := SampleContext(context.Background())
	if s.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want at least 1", s.LogicalCPUs)
	}
	if s.TotalMemory == 0 {
		t.Error("expected non-zero TotalMemory on a running system")
	}
}

func TestSampleContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := SampleContext(ctx)
	if s.CPUPercent < 0 || s.MemPercent < 0 {
		t.Errorf("canceled sample returned negative values: %+v", s)
	}
}
