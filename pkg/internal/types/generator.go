package types

import (
	"context"
	"time"
)

// BatchSink accepts polled batches without blocking. Push reports whether an
// older batch had to be dropped to make room.
type BatchSink interface {
	Push(batch SampleBatch) bool
	Overruns() uint64
}

// Generator is the acquisition producer: it polls a SampleSource on a fixed tick and
// pushes every non-empty poll into a BatchSink.
type Generator interface {
	ConnectSource(source SampleSource)
	ConnectSink(sink BatchSink)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	SetPollInterval(interval time.Duration)
	GetPollInterval() time.Duration
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	Sequence() uint64
	Start(ctx context.Context) error
	Stop() error
	IsStarted() bool
}
