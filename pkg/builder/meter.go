package builder

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/meter"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// MetricName is a type alias for metric names used in the Meter.
type MetricName = string

const (
	MetricCurrentCpuPercentage    MetricName = types.MetricCurrentCpuPercentage
	MetricCurrentRamPercentage    MetricName = types.MetricCurrentRamPercentage
	MetricComponentRunningCount   MetricName = types.MetricComponentRunningCount
	MetricGeneratorRunningCount   MetricName = types.MetricGeneratorRunningCount
	MetricWireRunningCount        MetricName = types.MetricWireRunningCount
	MetricBatchesAcquiredCount    MetricName = types.MetricBatchesAcquiredCount
	MetricSamplesAcquiredCount    MetricName = types.MetricSamplesAcquiredCount
	MetricBatchesDroppedCount     MetricName = types.MetricBatchesDroppedCount
	MetricPointsProcessedCount    MetricName = types.MetricPointsProcessedCount
	MetricSessionsStartedCount    MetricName = types.MetricSessionsStartedCount
	MetricSessionsStoppedCount    MetricName = types.MetricSessionsStoppedCount
	MetricAnalysisCount           MetricName = types.MetricAnalysisCount
	MetricPersistCount            MetricName = types.MetricPersistCount
	MetricStateTransitionCount    MetricName = types.MetricStateTransitionCount
	MetricTotalErrorCount         MetricName = types.MetricTotalErrorCount
	MetricConfigurationErrorCount MetricName = types.MetricConfigurationErrorCount
	MetricAcquisitionErrorCount   MetricName = types.MetricAcquisitionErrorCount
	MetricProcessingErrorCount    MetricName = types.MetricProcessingErrorCount
	MetricStorageErrorCount       MetricName = types.MetricStorageErrorCount
)

// NewMeter creates a meter of named counters and host gauges.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	return meter.NewMeter(options...)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[types.Meter] {
	return meter.WithLogger(loggers...)
}

// MeterWithInitialMetricCount seeds a counter.
func MeterWithInitialMetricCount(metricName MetricName, count uint64) types.Option[types.Meter] {
	return meter.WithInitialMetricCount(metricName, count)
}

func MeterWithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return meter.WithComponentMetadata(name, id)
}
