package generator

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// NotifyLoggers emits a log event to all configured loggers.
func (g *Generator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	types.Emit(g.snapshotLoggers(), level, msg, keysAndValues...)
}

func (g *Generator) notifyStart() {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnStart(meta)
	}
}

func (g *Generator) notifyStop() {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnStop(meta)
	}
}

func (g *Generator) notifyBatch(batch types.SampleBatch) {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnBatch(meta, batch)
	}
}

func (g *Generator) notifyOverrun(total uint64) {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnOverrun(meta, total)
	}
}

func (g *Generator) notifyError(kind types.ErrorKind, err error) {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnError(meta, kind, err)
	}
}

func (g *Generator) snapshotLoggers() []types.Logger {
	g.loggersLock.Lock()
	loggers := append([]types.Logger(nil), g.loggers...)
	g.loggersLock.Unlock()
	return loggers
}

func (g *Generator) snapshotSensors() []types.Sensor {
	g.configLock.Lock()
	defer g.configLock.Unlock()
	return append([]types.Sensor(nil), g.sensors...)
}
