package generator

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithSource sets the sample source.
func WithSource(source types.SampleSource) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectSource(source)
	}
}

// WithSink sets the batch sink, normally the acquisition ring buffer.
func WithSink(sink types.BatchSink) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectSink(sink)
	}
}

// WithLogger registers loggers for the generator.
func WithLogger(l ...types.Logger) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectLogger(l...)
	}
}

// WithSensor registers sensors for the generator.
func WithSensor(s ...types.Sensor) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectSensor(s...)
	}
}

// WithPollInterval sets the acquisition tick.
func WithPollInterval(interval time.Duration) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.SetPollInterval(interval)
	}
}

// WithComponentMetadata sets the generator name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.SetComponentMetadata(name, id)
	}
}
