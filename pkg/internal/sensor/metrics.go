package sensor

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) addMeterCounters(metric string, delta uint64) {
	for _, m := range s.snapshotMeters() {
		m.AddCount(metric, delta)
	}
}

func (s *Sensor) setMeterCounters(metric string, value uint64) {
	for _, m := range s.snapshotMeters() {
		m.SetMetricCount(metric, value)
	}
}

func (s *Sensor) decrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.DecrementCount(metric)
	}
}

func errorMetric(kind types.ErrorKind) string {
	switch kind {
	case types.ErrorKindConfiguration:
		return types.MetricConfigurationErrorCount
	case types.ErrorKindAcquisition:
		return types.MetricAcquisitionErrorCount
	case types.ErrorKindProcessing:
		return types.MetricProcessingErrorCount
	case types.ErrorKindStorage:
		return types.MetricStorageErrorCount
	}
	return ""
}

// decorateCallbacks appends the callbacks that keep connected meters in step
// with the events the sensor sees.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnStartFunc(func(c types.ComponentMetadata) {
			switch c.Type {
			case "WIRE":
				s.incrementMeterCounters(types.MetricWireRunningCount)
			case "GENERATOR":
				s.incrementMeterCounters(types.MetricGeneratorRunningCount)
			}
			s.incrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnStopFunc(func(c types.ComponentMetadata) {
			switch c.Type {
			case "WIRE":
				s.decrementMeterCounters(types.MetricWireRunningCount)
			case "GENERATOR":
				s.decrementMeterCounters(types.MetricGeneratorRunningCount)
			}
			s.decrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnBatchFunc(func(c types.ComponentMetadata, batch types.SampleBatch) {
			s.incrementMeterCounters(types.MetricBatchesAcquiredCount)
			s.addMeterCounters(types.MetricSamplesAcquiredCount, uint64(len(batch.Samples)))
		}),
		WithOnPointFunc(func(c types.ComponentMetadata, p types.ProcessedPoint) {
			s.incrementMeterCounters(types.MetricPointsProcessedCount)
		}),
		WithOnOverrunFunc(func(c types.ComponentMetadata, total uint64) {
			s.setMeterCounters(types.MetricBatchesDroppedCount, total)
		}),
		WithOnAnalyzedFunc(func(c types.ComponentMetadata, result types.AnalysisResult) {
			s.incrementMeterCounters(types.MetricAnalysisCount)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, kind types.ErrorKind, err error) {
			s.incrementMeterCounters(types.MetricTotalErrorCount)
			if metric := errorMetric(kind); metric != "" {
				s.incrementMeterCounters(metric)
			}
		}),
		WithOnPersistedFunc(func(c types.ComponentMetadata, sessionID string) {
			s.incrementMeterCounters(types.MetricPersistCount)
		}),
		WithOnStateChangeFunc(func(c types.ComponentMetadata, from types.SessionState, to types.SessionState) {
			s.incrementMeterCounters(types.MetricStateTransitionCount)
			switch to {
			case types.StateRunning:
				s.incrementMeterCounters(types.MetricSessionsStartedCount)
			case types.StateStopped:
				if from == types.StateRunning {
					s.incrementMeterCounters(types.MetricSessionsStoppedCount)
				}
			}
		}),
	)
}
