package wire

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithBuffer sets the batch source, normally the acquisition ring buffer.
func WithBuffer(buffer types.BatchSource) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectBuffer(buffer)
	}
}

// WithConverter sets the voltage converter.
func WithConverter(c types.Converter) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectConverter(c)
	}
}

// WithProcessor sets the mechanics engine.
func WithProcessor(p types.PointProcessor) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectProcessor(p)
	}
}

// WithRecorder sets the session recorder.
func WithRecorder(r types.PointRecorder) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectRecorder(r)
	}
}

// WithLogger adds loggers to the wire.
func WithLogger(logger ...types.Logger) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectLogger(logger...)
	}
}

// WithSensor adds sensors to the wire.
func WithSensor(sensor ...types.Sensor) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.ConnectSensor(sensor...)
	}
}

// WithProcessInterval sets the processing tick.
func WithProcessInterval(interval time.Duration) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.SetProcessInterval(interval)
	}
}

// WithComponentMetadata sets the wire name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Wire] {
	return func(w types.Wire) {
		w.SetComponentMetadata(name, id)
	}
}
