package generator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Start begins polling the source on the configured tick.
func (g *Generator) Start(ctx context.Context) error {
	g.configLock.Lock()
	source, sink := g.source, g.sink
	g.configLock.Unlock()
	if source == nil {
		return types.NewConfigurationError("generator.source", "no sample source connected")
	}
	if sink == nil {
		return types.NewConfigurationError("generator.sink", "no batch sink connected")
	}

	if !atomic.CompareAndSwapInt32(&g.started, 0, 1) {
		return fmt.Errorf("generator already started")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		atomic.StoreInt32(&g.started, 0)
		return err
	}

	g.stopLock.Lock()
	g.stopOnce = sync.Once{}
	g.stopLock.Unlock()

	g.configLock.Lock()
	g.ctx, g.cancel = context.WithCancel(ctx)
	runCtx := g.ctx
	interval := g.pollInterval
	g.configLock.Unlock()

	atomic.StoreUint64(&g.sequence, 0)
	g.notifyStart()

	g.wg.Add(1)
	go g.run(runCtx, source, sink, interval)

	g.NotifyLoggers(types.InfoLevel, "acquisition started",
		"component", g.GetComponentMetadata(),
		"event", "Start",
		"result", "SUCCESS",
		"poll_interval", interval.String(),
	)
	return nil
}

// Stop cancels polling and waits for the loop to exit. No batch is pushed after
// Stop returns.
func (g *Generator) Stop() error {
	g.stopLock.Lock()
	defer g.stopLock.Unlock()

	g.stopOnce.Do(func() {
		if atomic.CompareAndSwapInt32(&g.started, 1, 0) {
			g.configLock.Lock()
			cancel := g.cancel
			g.configLock.Unlock()
			if cancel != nil {
				cancel()
			}
			g.wg.Wait()
			g.notifyStop()

			g.NotifyLoggers(types.InfoLevel, "acquisition stopped",
				"component", g.GetComponentMetadata(),
				"event", "Stop",
				"result", "SUCCESS",
				"batches", g.Sequence(),
			)
		}
	})
	return nil
}
