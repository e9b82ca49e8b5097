// Package sensor provides options for configuring Sensor components.
//
// Options add loggers and meters and register callbacks for result events such as
// OnPoint, OnOverrun or OnAnalyzed. The presentation layer subscribes through them.
package sensor

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// WithLogger adds loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter connects meters whose counters follow the sensor's events.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithOnStartFunc registers callbacks for component start.
func WithOnStartFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStart(callback...)
	}
}

// WithOnStopFunc registers callbacks for component stop.
func WithOnStopFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStop(callback...)
	}
}

// WithOnBatchFunc registers callbacks for every batch accepted from the sample source.
func WithOnBatchFunc(callback ...func(c types.ComponentMetadata, batch types.SampleBatch)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnBatch(callback...)
	}
}

// WithOnPointFunc registers callbacks for every processed point. They run on the
// processing goroutine and must return quickly.
func WithOnPointFunc(callback ...func(c types.ComponentMetadata, p types.ProcessedPoint)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPoint(callback...)
	}
}

// WithOnOverrunFunc registers callbacks receiving the running overrun total.
func WithOnOverrunFunc(callback ...func(c types.ComponentMetadata, total uint64)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnOverrun(callback...)
	}
}

// WithOnAnalyzedFunc registers callbacks for completed analyses.
func WithOnAnalyzedFunc(callback ...func(c types.ComponentMetadata, result types.AnalysisResult)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnAnalyzed(callback...)
	}
}

// WithOnErrorFunc registers callbacks for classified errors.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, kind types.ErrorKind, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnError(callback...)
	}
}

// WithOnPersistedFunc registers callbacks for sessions written to the store.
func WithOnPersistedFunc(callback ...func(c types.ComponentMetadata, sessionID string)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPersisted(callback...)
	}
}

// WithOnStateChangeFunc registers callbacks for orchestrator state transitions.
func WithOnStateChangeFunc(callback ...func(c types.ComponentMetadata, from types.SessionState, to types.SessionState)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStateChange(callback...)
	}
}
