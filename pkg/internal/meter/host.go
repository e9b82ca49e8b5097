package meter

import (
	"context"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// cpuSampleWindow is the averaging window handed to cpu.Percent.
const cpuSampleWindow = 500 * time.Millisecond

// SampleHost records the current CPU and RAM utilisation of the host.
func (m *Meter) SampleHost() error {
	cpuPercentages, err := cpu.Percent(cpuSampleWindow, false)
	if err != nil {
		m.NotifyLoggers(types.WarnLevel, "host cpu sample failed",
			"component", m.GetComponentMetadata(),
			"event", "SampleHost",
			"result", "FAILURE",
			"error", err,
		)
		return err
	}
	memStats, err := mem.VirtualMemory()
	if err != nil {
		m.NotifyLoggers(types.WarnLevel, "host memory sample failed",
			"component", m.GetComponentMetadata(),
			"event", "SampleHost",
			"result", "FAILURE",
			"error", err,
		)
		return err
	}

	if len(cpuPercentages) > 0 {
		m.SetMetricPercentage(types.MetricCurrentCpuPercentage, cpuPercentages[0])
	}
	m.SetMetricPercentage(types.MetricCurrentRamPercentage, memStats.UsedPercent)
	return nil
}

// Monitor samples the host every interval until ctx is done. A non-positive
// interval samples once and returns.
func (m *Meter) Monitor(ctx context.Context, interval time.Duration) {
	_ = m.SampleHost()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.NotifyLoggers(types.DebugLevel, "host monitor stopped",
				"component", m.GetComponentMetadata(),
				"event", "Monitor",
				"result", "STOPPED",
			)
			return
		case <-ticker.C:
			_ = m.SampleHost()
		}
	}
}
