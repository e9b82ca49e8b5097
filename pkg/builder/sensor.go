package builder

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/sensor"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// NewSensor creates a sensor that fans events out to callbacks and meters.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter connects meters that count every event the sensor sees.
func SensorWithMeter(m ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(m...)
}

// SensorWithOnPointFunc registers a callback for every processed point.
func SensorWithOnPointFunc(callback ...func(c ComponentMetadata, p ProcessedPoint)) types.Option[types.Sensor] {
	return sensor.WithOnPointFunc(callback...)
}

// SensorWithOnOverrunFunc registers a callback for ring buffer overruns.
func SensorWithOnOverrunFunc(callback ...func(c ComponentMetadata, total uint64)) types.Option[types.Sensor] {
	return sensor.WithOnOverrunFunc(callback...)
}

// SensorWithOnAnalyzedFunc registers a callback for completed analyses.
func SensorWithOnAnalyzedFunc(callback ...func(c ComponentMetadata, result AnalysisResult)) types.Option[types.Sensor] {
	return sensor.WithOnAnalyzedFunc(callback...)
}

// SensorWithOnErrorFunc registers a callback for errors, tagged by kind.
func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, kind ErrorKind, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

// SensorWithOnPersistedFunc registers a callback for saved sessions.
func SensorWithOnPersistedFunc(callback ...func(c ComponentMetadata, sessionID string)) types.Option[types.Sensor] {
	return sensor.WithOnPersistedFunc(callback...)
}

// SensorWithOnStateChangeFunc registers a callback for orchestrator transitions.
func SensorWithOnStateChangeFunc(callback ...func(c ComponentMetadata, from SessionState, to SessionState)) types.Option[types.Sensor] {
	return sensor.WithOnStateChangeFunc(callback...)
}

func SensorWithOnStartFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

func SensorWithOnStopFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStopFunc(callback...)
}
