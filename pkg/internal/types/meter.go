package types

import (
	"context"
	"time"
)

const (
	MetricCurrentCpuPercentage    = "current_cpu_percentage"
	MetricCurrentRamPercentage    = "current_ram_percentage"
	MetricComponentRunningCount   = "component_running_count"
	MetricGeneratorRunningCount   = "generator_running_count"
	MetricWireRunningCount        = "wire_running_count"
	MetricBatchesAcquiredCount    = "batches_acquired_count"
	MetricSamplesAcquiredCount    = "samples_acquired_count"
	MetricBatchesDroppedCount     = "batches_dropped_count"
	MetricPointsProcessedCount    = "points_processed_count"
	MetricSessionsStartedCount    = "sessions_started_count"
	MetricSessionsStoppedCount    = "sessions_stopped_count"
	MetricAnalysisCount           = "analysis_count"
	MetricPersistCount            = "persist_count"
	MetricStateTransitionCount    = "state_transition_count"
	MetricTotalErrorCount         = "total_error_count"
	MetricConfigurationErrorCount = "configuration_error_count"
	MetricAcquisitionErrorCount   = "acquisition_error_count"
	MetricProcessingErrorCount    = "processing_error_count"
	MetricStorageErrorCount       = "storage_error_count"
)

// MetricSnapshot is a point-in-time copy of a meter's counters and gauges.
type MetricSnapshot struct {
	Counts      map[string]uint64
	Percentages map[string]float64
}

// Meter is a registry of named counters and percentage gauges.
type Meter interface {
	IncrementCount(metricName string)
	AddCount(metricName string, delta uint64)
	DecrementCount(metricName string)
	SetMetricCount(metricName string, count uint64)
	GetMetricCount(metricName string) uint64
	SetMetricPercentage(metricName string, percentage float64)
	GetMetricPercentage(metricName string) float64
	GetMetricNames() []string
	Snapshot() MetricSnapshot
	// SampleHost records current CPU and RAM utilisation of the host.
	SampleHost() error
	// Monitor samples the host every interval until ctx is done.
	Monitor(ctx context.Context, interval time.Duration)
	ResetMetrics()
	ConnectLogger(...Logger)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
}
