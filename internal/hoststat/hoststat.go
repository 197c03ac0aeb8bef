// Package hoststat takes a best-effort snapshot of the machine a batch ran
// on, so timings from different runs can be put side by side.
package hoststat

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is host state at one instant. Fields that could not be read stay zero.
type Snapshot struct {
	OS           string  `json:"os" yaml:"os"`
	Architecture string  `json:"architecture" yaml:"architecture"`
	CPUThreads   int     `json:"cpu_threads" yaml:"cpu_threads"`
	CPUPercent   float64 `json:"cpu_percent" yaml:"cpu_percent"`
	RAMTotal     uint64  `json:"ram_total_bytes" yaml:"ram_total_bytes"`
	RAMAvailable uint64  `json:"ram_available_bytes" yaml:"ram_available_bytes"`
	Load1        float64 `json:"load1" yaml:"load1"`
	Load5        float64 `json:"load5" yaml:"load5"`
	Load15       float64 `json:"load15" yaml:"load15"`
}

// Source reads host metrics. gopsutil backs the default one.
type Source interface {
	CPUThreads(ctx context.Context) (int, error)
	CPUPercent(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (total, available uint64, err error)
	Load(ctx context.Context) (load1, load5, load15 float64, err error)
}

// Take collects a snapshot, ignoring individual read errors.
func Take(ctx context.Context, src Source) *Snapshot {
	if src == nil {
		src = Gopsutil{}
	}

	s := &Snapshot{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}

	if n, err := src.CPUThreads(ctx); err == nil {
		s.CPUThreads = n
	}
	if p, err := src.CPUPercent(ctx); err == nil {
		s.CPUPercent = p
	}
	if total, avail, err := src.Memory(ctx); err == nil {
		s.RAMTotal = total
		s.RAMAvailable = avail
	}
	if l1, l5, l15, err := src.Load(ctx); err == nil {
		s.Load1, s.Load5, s.Load15 = l1, l5, l15
	}

	return s
}

// Gopsutil reads the local host
type Gopsutil struct{}

func (Gopsutil) CPUThreads(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// CPUPercent returns utilisation since the previous call. The first call
// in a process compares against boot, which is good enough for a snapshot.
func (Gopsutil) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

func (Gopsutil) Memory(ctx context.Context) (uint64, uint64, error) {
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vmem.Total, vmem.Available, nil
}

func (Gopsutil) Load(ctx context.Context) (float64, float64, float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	return avg.Load1, avg.Load5, avg.Load15, nil
}
