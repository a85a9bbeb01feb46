package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryReport is a snapshot of process and host memory for the
// performance report.
type MemoryReport struct {
	RSS       uint64 // резидентная память процесса
	HeapAlloc uint64
	NumGC     uint32
	HostTotal uint64
	HostUsed  float64 // проценты
}

// ReadMemory collects a MemoryReport. Host figures stay zero when the
// platform does not expose them.
func ReadMemory() (MemoryReport, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	r := MemoryReport{HeapAlloc: ms.HeapAlloc, NumGC: ms.NumGC}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return r, fmt.Errorf("process info: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return r, fmt.Errorf("process memory: %w", err)
	}
	r.RSS = info.RSS

	if vm, err := mem.VirtualMemory(); err == nil {
		r.HostTotal = vm.Total
		r.HostUsed = vm.UsedPercent
	}
	return r, nil
}

func (r MemoryReport) String() string {
	return fmt.Sprintf("RSS %s | Heap %s | GC %d | Host %s (%.1f%% used)",
		FormatBytes(r.RSS), FormatBytes(r.HeapAlloc), r.NumGC, FormatBytes(r.HostTotal), r.HostUsed)
}

func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
