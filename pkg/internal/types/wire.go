package types

import (
	"context"
	"time"
)

// BatchSource is the consumer side of the ring buffer.
type BatchSource interface {
	PopAll() []SampleBatch
}

// Converter maps raw voltages to force (N) and displacement (mm).
type Converter interface {
	Convert(s Sample) (forceN float64, displacementMM float64)
}

// PointProcessor derives stress, strain and rolling stiffness.
type PointProcessor interface {
	Process(s Sample, forceN float64, displacementMM float64) ProcessedPoint
	Reset()
}

// Wire is the processing consumer: on a fixed tick it drains the BatchSource through
// the Converter and PointProcessor into the PointRecorder and its sensors.
type Wire interface {
	ConnectBuffer(buffer BatchSource)
	ConnectConverter(c Converter)
	ConnectProcessor(p PointProcessor)
	ConnectRecorder(r PointRecorder)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	SetProcessInterval(interval time.Duration)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	// Drain processes everything currently buffered and returns the number of points produced.
	Drain() int
	ProcessedCount() uint64
	Start(ctx context.Context) error
	// Stop halts the tick loop and performs a final drain before returning.
	Stop() error
	IsStarted() bool
}
