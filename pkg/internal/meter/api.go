package meter

import (
	"sync/atomic"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// IncrementCount adds one to the named counter.
func (m *Meter) IncrementCount(metricName string) {
	atomic.AddUint64(m.counter(metricName), 1)
}

// AddCount adds delta to the named counter.
func (m *Meter) AddCount(metricName string, delta uint64) {
	if delta == 0 {
		return
	}
	atomic.AddUint64(m.counter(metricName), delta)
}

// DecrementCount subtracts one from the named counter, stopping at zero.
func (m *Meter) DecrementCount(metricName string) {
	c := m.counter(metricName)
	for {
		cur := atomic.LoadUint64(c)
		if cur == 0 {
			return
		}
		if atomic.CompareAndSwapUint64(c, cur, cur-1) {
			return
		}
	}
}

// SetMetricCount overwrites the named counter.
func (m *Meter) SetMetricCount(metricName string, count uint64) {
	atomic.StoreUint64(m.counter(metricName), count)
}

// GetMetricCount returns the named counter, or zero when it was never registered.
func (m *Meter) GetMetricCount(metricName string) uint64 {
	m.mu.RLock()
	c, ok := m.counts[metricName]
	m.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(c)
}

// SetMetricPercentage records a percentage gauge.
func (m *Meter) SetMetricPercentage(metricName string, percentage float64) {
	m.mu.Lock()
	m.percentages[metricName] = percentage
	m.mu.Unlock()
}

// GetMetricPercentage returns a percentage gauge.
func (m *Meter) GetMetricPercentage(metricName string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.percentages[metricName]
}

// GetMetricNames returns the counter names in registration order.
func (m *Meter) GetMetricNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.metricNames...)
}

// Snapshot copies every counter and gauge.
func (m *Meter) Snapshot() types.MetricSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := types.MetricSnapshot{
		Counts:      make(map[string]uint64, len(m.counts)),
		Percentages: make(map[string]float64, len(m.percentages)),
	}
	for name, c := range m.counts {
		snap.Counts[name] = atomic.LoadUint64(c)
	}
	for name, p := range m.percentages {
		snap.Percentages[name] = p
	}
	return snap
}

// ResetMetrics zeroes every counter and gauge. Registered names are kept.
func (m *Meter) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.counts {
		atomic.StoreUint64(c, 0)
	}
	for name := range m.percentages {
		m.percentages[name] = 0
	}
}

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata sets the meter name and ID.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.metadataMu.Lock()
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
	m.metadataMu.Unlock()
}
