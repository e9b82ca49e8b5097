// Package wire implements the processing consumer of the acquisition pipeline.
//
// A Wire wakes on a fixed tick, drains every batch the generator has pushed into
// the ring buffer, converts each sample through the calibration, derives stress,
// strain and rolling stiffness, appends the point to the live session and fans it
// out to sensors. Stop halts the tick and performs one final drain so no pushed
// batch is lost.
package wire

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// DefaultProcessInterval is the processing tick.
const DefaultProcessInterval = 50 * time.Millisecond

// Wire drains sample batches into processed points.
type Wire struct {
	componentMetadata types.ComponentMetadata // Metadata for the wire, including ID and type.
	configLock        sync.Mutex              // Protects configuration and metadata.
	buffer            types.BatchSource       // Ring buffer filled by the generator.
	converter         types.Converter         // Voltage to engineering units.
	processor         types.PointProcessor    // Stress, strain and stiffness.
	recorder          types.PointRecorder     // Live session receiving points.
	loggers           []types.Logger          // Loggers for recording events and errors.
	loggersLock       sync.Mutex              // Protects access to the loggers slice.
	sensors           []types.Sensor          // Sensors receiving point and error events.
	sensorLock        sync.Mutex              // Protects access to the sensors slice.
	interval          time.Duration           // Processing tick.
	ctx               context.Context         // Context for managing the wire's lifecycle.
	cancel            context.CancelFunc      // Function to cancel the wire's context.
	wg                sync.WaitGroup          // Tracks the tick loop.
	drainLock         sync.Mutex              // Serialises drains between the tick loop and Stop.
	lastTimestamp     float64                 // Last accepted sample time; guarded by drainLock.
	processed         uint64                  // Points produced since Start.
	started           int32                   // Atomic flag indicating whether the wire has been started.
	stopOnce          sync.Once
	stopLock          sync.Mutex
}

// NewWire creates a Wire configured with the provided options.
func NewWire(ctx context.Context, options ...types.Option[types.Wire]) types.Wire {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	w := &Wire{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "WIRE",
		},
		loggers:       make([]types.Logger, 0),
		sensors:       make([]types.Sensor, 0),
		interval:      DefaultProcessInterval,
		ctx:           ctx,
		cancel:        cancel,
		lastTimestamp: math.Inf(-1),
	}

	for _, opt := range options {
		opt(w)
	}

	return w
}
