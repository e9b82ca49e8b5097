package orchestrator

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/analyzer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithAnalyzer replaces the default region analyzer.
func WithAnalyzer(a *analyzer.Analyzer) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.analyzer = a
	}
}

// WithStore sets the store used by Persist.
func WithStore(store types.SessionStore) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithBufferCapacity sets the ring buffer capacity in batches.
func WithBufferCapacity(batches int) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.bufferCapacity = batches
	}
}

// WithPollInterval sets the acquisition tick.
func WithPollInterval(d time.Duration) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.pollInterval = d
	}
}

// WithProcessInterval sets the processing tick.
func WithProcessInterval(d time.Duration) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.processInterval = d
	}
}

// WithSampleRate records the acquisition rate in session metadata.
func WithSampleRate(hz float64) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.sampleRate = hz
	}
}

// WithFirstSessionNumber continues numbering after sessions already stored.
func WithFirstSessionNumber(n int) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		if n > 0 {
			o.nextNumber = n
		}
	}
}

// WithClock overrides the wall clock used for session start and end times.
func WithClock(now func() time.Time) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSensor registers sensors for the orchestrator and its pipeline.
func WithSensor(sensors ...types.Sensor) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.ConnectSensor(sensors...)
	}
}

// WithLogger registers loggers for the orchestrator and its pipeline.
func WithLogger(loggers ...types.Logger) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.ConnectLogger(loggers...)
	}
}
