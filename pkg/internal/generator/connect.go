package generator

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// ConnectSource sets the sample source polled on every tick.
// Panics if called after Start.
func (g *Generator) ConnectSource(source types.SampleSource) {
	g.requireNotStarted("ConnectSource")

	g.configLock.Lock()
	g.source = source
	g.configLock.Unlock()

	g.NotifyLoggers(types.DebugLevel, "source connected",
		"component", g.GetComponentMetadata(),
		"event", "ConnectSource",
		"result", "SUCCESS",
	)
}

// ConnectSink sets the buffer that receives polled batches.
// Panics if called after Start.
func (g *Generator) ConnectSink(sink types.BatchSink) {
	g.requireNotStarted("ConnectSink")

	g.configLock.Lock()
	g.sink = sink
	g.configLock.Unlock()
}

// ConnectLogger registers loggers for the generator.
// Panics if called after Start.
func (g *Generator) ConnectLogger(loggers ...types.Logger) {
	g.requireNotStarted("ConnectLogger")

	if len(loggers) == 0 {
		return
	}

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

	g.loggersLock.Lock()
	g.loggers = append(g.loggers, loggers...)
	g.loggersLock.Unlock()
}

// ConnectSensor registers sensors for the generator.
// Panics if called after Start.
func (g *Generator) ConnectSensor(sensors ...types.Sensor) {
	g.requireNotStarted("ConnectSensor")

	if len(sensors) == 0 {
		return
	}

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

	g.configLock.Lock()
	g.sensors = append(g.sensors, sensors...)
	g.configLock.Unlock()

	for _, s := range sensors {
		g.NotifyLoggers(types.DebugLevel, "sensor connected",
			"component", g.GetComponentMetadata(),
			"event", "ConnectSensor",
			"result", "SUCCESS",
			"target", s.GetComponentMetadata(),
		)
	}
}

// SetPollInterval sets the acquisition tick. Non-positive values are ignored.
// Panics if called after Start.
func (g *Generator) SetPollInterval(interval time.Duration) {
	g.requireNotStarted("SetPollInterval")
	if interval <= 0 {
		return
	}
	g.configLock.Lock()
	g.pollInterval = interval
	g.configLock.Unlock()
}

// SetComponentMetadata sets the generator name and ID.
// Panics if called after Start.
func (g *Generator) SetComponentMetadata(name string, id string) {
	g.requireNotStarted("SetComponentMetadata")
	g.configLock.Lock()
	g.componentMetadata.Name = name
	g.componentMetadata.ID = id
	g.configLock.Unlock()
}
