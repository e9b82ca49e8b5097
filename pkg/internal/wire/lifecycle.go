package wire

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Start resets per-session state and launches the tick loop.
func (w *Wire) Start(ctx context.Context) error {
	w.configLock.Lock()
	missing := ""
	switch {
	case w.buffer == nil:
		missing = "wire.buffer"
	case w.converter == nil:
		missing = "wire.converter"
	case w.processor == nil:
		missing = "wire.processor"
	case w.recorder == nil:
		missing = "wire.recorder"
	}
	interval := w.interval
	w.configLock.Unlock()
	if missing != "" {
		return types.NewConfigurationError(missing, "not connected")
	}

	if !atomic.CompareAndSwapInt32(&w.started, 0, 1) {
		return fmt.Errorf("wire already started")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		atomic.StoreInt32(&w.started, 0)
		return err
	}

	w.stopLock.Lock()
	w.stopOnce = sync.Once{}
	w.stopLock.Unlock()

	w.drainLock.Lock()
	w.processor.Reset()
	w.lastTimestamp = math.Inf(-1)
	atomic.StoreUint64(&w.processed, 0)
	w.drainLock.Unlock()

	w.configLock.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	runCtx := w.ctx
	w.configLock.Unlock()

	w.notifyStart()

	w.wg.Add(1)
	go w.run(runCtx, interval)

	w.NotifyLoggers(types.InfoLevel, "processing started",
		"component", w.GetComponentMetadata(),
		"event", "Start",
		"result", "SUCCESS",
		"process_interval", interval.String(),
	)
	return nil
}

// Stop halts the tick loop, then drains whatever is still buffered.
func (w *Wire) Stop() error {
	w.stopLock.Lock()
	defer w.stopLock.Unlock()

	w.stopOnce.Do(func() {
		if !atomic.CompareAndSwapInt32(&w.started, 1, 0) {
			return
		}
		w.configLock.Lock()
		cancel := w.cancel
		w.configLock.Unlock()
		if cancel != nil {
			cancel()
		}
		w.wg.Wait()

		final := w.Drain()
		w.notifyStop()

		w.NotifyLoggers(types.InfoLevel, "processing stopped",
			"component", w.GetComponentMetadata(),
			"event", "Stop",
			"result", "SUCCESS",
			"final_drain_points", final,
			"points", w.ProcessedCount(),
		)
	})
	return nil
}

func (w *Wire) run(ctx context.Context, interval time.Duration) {
	defer w.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain()
		}
	}
}
