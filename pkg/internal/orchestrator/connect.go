package orchestrator

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// ConnectSensor registers sensors with the orchestrator, generator and wire.
// Panics unless the orchestrator is Idle.
func (o *Orchestrator) ConnectSensor(sensors ...types.Sensor) {
	o.requireIdle("ConnectSensor")

	n := 0
	for _, s := range sensors {
		if s != nil {
			sensors[n] = s
			n++
		}
	}
	if n == 0 {
		return
	}
	sensors = sensors[:n]

	o.sensorsLock.Lock()
	o.sensors = append(o.sensors, sensors...)
	o.sensorsLock.Unlock()

	if o.generator != nil {
		o.generator.ConnectSensor(sensors...)
	}
	if o.wire != nil {
		o.wire.ConnectSensor(sensors...)
	}
}

// ConnectLogger registers loggers with the orchestrator, generator and wire.
// Panics unless the orchestrator is Idle.
func (o *Orchestrator) ConnectLogger(loggers ...types.Logger) {
	o.requireIdle("ConnectLogger")

	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	o.loggersLock.Lock()
	o.loggers = append(o.loggers, loggers...)
	o.loggersLock.Unlock()

	if o.generator != nil {
		o.generator.ConnectLogger(loggers...)
	}
	if o.wire != nil {
		o.wire.ConnectLogger(loggers...)
	}
	if o.analyzer != nil {
		o.analyzer.ConnectLogger(loggers...)
	}
}

// SetComponentMetadata sets the orchestrator name and ID.
func (o *Orchestrator) SetComponentMetadata(name string, id string) {
	o.metadataLock.Lock()
	o.componentMetadata.Name = name
	o.componentMetadata.ID = id
	o.metadataLock.Unlock()
}

func (o *Orchestrator) requireIdle(action string) {
	if o.State() != types.StateIdle {
		panic("orchestrator: " + action + " called while a session is active")
	}
}
