// Package generator implements the acquisition producer. A Generator polls a
// SampleSource on a fixed tick and pushes each non-empty poll into a BatchSink
// without ever waiting on the consumer.
package generator

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// DefaultPollInterval is the acquisition tick (20 Hz).
const DefaultPollInterval = 50 * time.Millisecond

type Generator struct {
	wg                sync.WaitGroup
	ctx               context.Context
	cancel            context.CancelFunc
	configLock        sync.Mutex
	loggers           []types.Logger
	loggersLock       sync.Mutex
	componentMetadata types.ComponentMetadata
	source            types.SampleSource
	sink              types.BatchSink
	sensors           []types.Sensor
	pollInterval      time.Duration
	sequence          uint64
	started           int32
	stopOnce          sync.Once
	stopLock          sync.Mutex
}

func NewGenerator(ctx context.Context, options ...types.Option[types.Generator]) types.Generator {
	ctx, cancel := context.WithCancel(ctx)

	g := &Generator{
		ctx:    ctx,
		cancel: cancel,
		componentMetadata: types.ComponentMetadata{
			Type: "GENERATOR",
			ID:   utils.GenerateUniqueHash(),
		},
		sensors:      []types.Sensor{},
		loggers:      make([]types.Logger, 0),
		pollInterval: DefaultPollInterval,
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}
