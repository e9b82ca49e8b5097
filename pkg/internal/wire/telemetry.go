package wire

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// NotifyLoggers emits a log event to all configured loggers.
func (w *Wire) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	w.loggersLock.Lock()
	loggers := append([]types.Logger(nil), w.loggers...)
	w.loggersLock.Unlock()
	types.Emit(loggers, level, msg, keysAndValues...)
}

func (w *Wire) snapshotSensors() []types.Sensor {
	w.sensorLock.Lock()
	defer w.sensorLock.Unlock()
	return append([]types.Sensor(nil), w.sensors...)
}

func (w *Wire) notifyStart() {
	meta := w.GetComponentMetadata()
	for _, s := range w.snapshotSensors() {
		s.InvokeOnStart(meta)
	}
}

func (w *Wire) notifyStop() {
	meta := w.GetComponentMetadata()
	for _, s := range w.snapshotSensors() {
		s.InvokeOnStop(meta)
	}
}

func (w *Wire) notifyPoint(p types.ProcessedPoint) {
	meta := w.GetComponentMetadata()
	for _, s := range w.snapshotSensors() {
		s.InvokeOnPoint(meta, p)
	}
}

func (w *Wire) notifyError(kind types.ErrorKind, err error) {
	meta := w.GetComponentMetadata()
	for _, s := range w.snapshotSensors() {
		s.InvokeOnError(meta, kind, err)
	}
}
