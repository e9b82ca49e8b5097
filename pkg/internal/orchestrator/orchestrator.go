// Package orchestrator owns the live test session and drives it through
// Idle -> Running -> Stopped -> Analyzed. It wires the acquisition generator and
// the processing wire around a shared ring buffer, runs the region analyzer on
// demand and hands finished sessions to a SessionStore.
//
// Commands are serialised. A command issued in the wrong state is rejected with an
// *types.InvalidStateError and changes nothing. Sensor callbacks run on the
// goroutine that raised the event and must not issue commands themselves.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/analyzer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/generator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/session"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
	"github.com/joeydtaylor/tensilerig/pkg/internal/wire"
)

// DefaultBufferCapacity is the ring buffer size in batches.
const DefaultBufferCapacity = 64

type Orchestrator struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	// cmdLock serialises lifecycle commands. stateLock guards state and recorder
	// for readers, so callbacks fired during a command may still call State.
	cmdLock   sync.Mutex
	stateLock sync.RWMutex
	state     types.SessionState
	recorder  *session.Recorder

	source     types.SampleSource
	calibrator *calibrator.Calibrator
	engine     *mechanics.Engine
	analyzer   *analyzer.Analyzer
	store      types.SessionStore

	buffer    *ringbuffer.RingBuffer
	generator types.Generator
	wire      types.Wire

	bufferCapacity  int
	pollInterval    time.Duration
	processInterval time.Duration
	sampleRate      float64
	nextNumber      int
	now             func() time.Time

	sensors     []types.Sensor
	sensorsLock sync.Mutex
	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New assembles an orchestrator around a sample source, a calibration and a
// mechanics engine. The generator, wire and ring buffer are built here so that
// their sensors and loggers match the orchestrator's.
func New(source types.SampleSource, cal *calibrator.Calibrator, engine *mechanics.Engine, options ...types.Option[*Orchestrator]) (*Orchestrator, error) {
	if source == nil {
		return nil, types.NewConfigurationError("acquisition.source", "sample source is required")
	}
	if cal == nil {
		return nil, types.NewConfigurationError("calibration", "calibrator is required")
	}
	if engine == nil {
		return nil, types.NewConfigurationError("processing", "mechanics engine is required")
	}

	o := &Orchestrator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ORCHESTRATOR",
		},
		state:           types.StateIdle,
		source:          source,
		calibrator:      cal,
		engine:          engine,
		bufferCapacity:  DefaultBufferCapacity,
		pollInterval:    generator.DefaultPollInterval,
		processInterval: wire.DefaultProcessInterval,
		nextNumber:      1,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}

	buffer, err := ringbuffer.New(o.bufferCapacity)
	if err != nil {
		return nil, err
	}
	o.buffer = buffer

	sensors := o.snapshotSensors()
	loggers := o.snapshotLoggers()
	if o.analyzer == nil {
		o.analyzer = analyzer.New(
			analyzer.WithSampleRate(o.sampleRate),
			analyzer.WithLogger(loggers...),
		)
	}

	o.generator = generator.NewGenerator(context.Background(),
		generator.WithSource(source),
		generator.WithSink(buffer),
		generator.WithPollInterval(o.pollInterval),
		generator.WithSensor(sensors...),
		generator.WithLogger(loggers...),
	)
	o.wire = wire.NewWire(context.Background(),
		wire.WithBuffer(buffer),
		wire.WithConverter(cal),
		wire.WithProcessor(engine),
		wire.WithProcessInterval(o.processInterval),
		wire.WithSensor(sensors...),
		wire.WithLogger(loggers...),
	)
	return o, nil
}
