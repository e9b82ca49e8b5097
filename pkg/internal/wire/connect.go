package wire

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// ConnectBuffer sets the batch source drained on every tick.
// Panics if called after Start.
func (w *Wire) ConnectBuffer(buffer types.BatchSource) {
	w.requireNotStarted("ConnectBuffer")
	w.configLock.Lock()
	w.buffer = buffer
	w.configLock.Unlock()
}

// ConnectConverter sets the voltage converter.
// Panics if called after Start.
func (w *Wire) ConnectConverter(c types.Converter) {
	w.requireNotStarted("ConnectConverter")
	w.configLock.Lock()
	w.converter = c
	w.configLock.Unlock()
}

// ConnectProcessor sets the mechanics engine.
// Panics if called after Start.
func (w *Wire) ConnectProcessor(p types.PointProcessor) {
	w.requireNotStarted("ConnectProcessor")
	w.configLock.Lock()
	w.processor = p
	w.configLock.Unlock()
}

// ConnectRecorder sets the session that receives processed points. A new
// recorder is connected for every session.
// Panics if called after Start.
func (w *Wire) ConnectRecorder(r types.PointRecorder) {
	w.requireNotStarted("ConnectRecorder")
	w.configLock.Lock()
	w.recorder = r
	w.configLock.Unlock()
}

// ConnectLogger attaches loggers to the wire.
// Panics if called after Start.
func (w *Wire) ConnectLogger(loggers ...types.Logger) {
	w.requireNotStarted("ConnectLogger")

	w.loggersLock.Lock()
	defer w.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			w.loggers = append(w.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors to the wire.
// Panics if called after Start.
func (w *Wire) ConnectSensor(sensors ...types.Sensor) {
	w.requireNotStarted("ConnectSensor")

	w.sensorLock.Lock()
	defer w.sensorLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			w.sensors = append(w.sensors, s)
		}
	}
}

// SetProcessInterval sets the processing tick. Non-positive values are ignored.
// Panics if called after Start.
func (w *Wire) SetProcessInterval(interval time.Duration) {
	w.requireNotStarted("SetProcessInterval")
	if interval <= 0 {
		return
	}
	w.configLock.Lock()
	w.interval = interval
	w.configLock.Unlock()
}

// SetComponentMetadata sets the wire name and ID.
// Panics if called after Start.
func (w *Wire) SetComponentMetadata(name string, id string) {
	w.requireNotStarted("SetComponentMetadata")
	w.configLock.Lock()
	w.componentMetadata.Name = name
	w.componentMetadata.ID = id
	w.configLock.Unlock()
}
