package orchestrator

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// NotifyLoggers emits a log event to all configured loggers.
func (o *Orchestrator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	types.Emit(o.snapshotLoggers(), level, msg, keysAndValues...)
}

func (o *Orchestrator) snapshotLoggers() []types.Logger {
	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()
	return append([]types.Logger(nil), o.loggers...)
}

func (o *Orchestrator) snapshotSensors() []types.Sensor {
	o.sensorsLock.Lock()
	defer o.sensorsLock.Unlock()
	return append([]types.Sensor(nil), o.sensors...)
}

func (o *Orchestrator) notifyStateChange(from, to types.SessionState) {
	meta := o.GetComponentMetadata()
	for _, s := range o.snapshotSensors() {
		s.InvokeOnStateChange(meta, from, to)
	}
}

func (o *Orchestrator) notifyAnalyzed(result types.AnalysisResult) {
	meta := o.GetComponentMetadata()
	for _, s := range o.snapshotSensors() {
		s.InvokeOnAnalyzed(meta, result)
	}
}

func (o *Orchestrator) notifyPersisted(sessionID string) {
	meta := o.GetComponentMetadata()
	for _, s := range o.snapshotSensors() {
		s.InvokeOnPersisted(meta, sessionID)
	}
}

func (o *Orchestrator) notifyError(kind types.ErrorKind, err error) {
	meta := o.GetComponentMetadata()
	for _, s := range o.snapshotSensors() {
		s.InvokeOnError(meta, kind, err)
	}
}
