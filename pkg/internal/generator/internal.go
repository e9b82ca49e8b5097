package generator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func (g *Generator) run(ctx context.Context, source types.SampleSource, sink types.BatchSink, interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.poll(ctx, source, sink)
		}
	}
}

// poll performs one acquisition tick. Source failures are reported and the
// loop keeps going; a poll error after cancellation is not reported.
func (g *Generator) poll(ctx context.Context, source types.SampleSource, sink types.BatchSink) {
	samples, err := source.Poll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		g.notifyError(types.ErrorKindAcquisition, err)
		g.NotifyLoggers(types.WarnLevel, "sample source poll failed",
			"component", g.GetComponentMetadata(),
			"event", "Poll",
			"result", "FAILURE",
			"error", err,
		)
		return
	}
	// Samples a source already returned are pushed even when Stop cancelled the
	// context mid-poll; Stop waits for this tick before returning.
	if len(samples) == 0 {
		return
	}

	batch := types.SampleBatch{
		Sequence: atomic.AddUint64(&g.sequence, 1),
		Samples:  samples,
	}
	dropped := sink.Push(batch)
	g.notifyBatch(batch)

	if dropped {
		total := sink.Overruns()
		g.notifyOverrun(total)
		g.NotifyLoggers(types.WarnLevel, "acquisition buffer overrun, oldest batch dropped",
			"component", g.GetComponentMetadata(),
			"event", "Push",
			"result", "OVERRUN",
			"overruns", total,
		)
	}
}
