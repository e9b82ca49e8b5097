package meter

import (
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

var defaultMetricNames = []string{
	types.MetricComponentRunningCount,
	types.MetricGeneratorRunningCount,
	types.MetricWireRunningCount,
	types.MetricBatchesAcquiredCount,
	types.MetricSamplesAcquiredCount,
	types.MetricBatchesDroppedCount,
	types.MetricPointsProcessedCount,
	types.MetricSessionsStartedCount,
	types.MetricSessionsStoppedCount,
	types.MetricAnalysisCount,
	types.MetricPersistCount,
	types.MetricStateTransitionCount,
	types.MetricTotalErrorCount,
	types.MetricConfigurationErrorCount,
	types.MetricAcquisitionErrorCount,
	types.MetricProcessingErrorCount,
	types.MetricStorageErrorCount,
}

// Meter is a registry of atomic counters and percentage gauges fed by sensors.
type Meter struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	mu          sync.RWMutex
	counts      map[string]*uint64
	percentages map[string]float64
	metricNames []string

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewMeter creates a Meter with every known counter registered at zero.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:      make(map[string]*uint64, len(defaultMetricNames)),
		percentages: make(map[string]float64, 2),
	}

	for _, name := range defaultMetricNames {
		m.register(name)
	}
	m.percentages[types.MetricCurrentCpuPercentage] = 0
	m.percentages[types.MetricCurrentRamPercentage] = 0

	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// register adds a counter if missing and returns it. Callers must hold mu.
func (m *Meter) register(name string) *uint64 {
	if c, ok := m.counts[name]; ok {
		return c
	}
	c := new(uint64)
	m.counts[name] = c
	m.metricNames = append(m.metricNames, name)
	return c
}

func (m *Meter) counter(name string) *uint64 {
	m.mu.RLock()
	c, ok := m.counts[name]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.register(name)
}
