package wire

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Drain processes every buffered batch in FIFO order and returns the number of
// points appended to the session. Samples whose timestamp does not advance, or
// whose voltages are not finite, are reported and skipped.
func (w *Wire) Drain() int {
	w.drainLock.Lock()
	defer w.drainLock.Unlock()

	w.configLock.Lock()
	buffer, converter, processor, recorder := w.buffer, w.converter, w.processor, w.recorder
	w.configLock.Unlock()
	if buffer == nil || converter == nil || processor == nil || recorder == nil {
		return 0
	}

	n := 0
	for _, batch := range buffer.PopAll() {
		for _, s := range batch.Samples {
			if err := w.checkSample(s); err != nil {
				w.reportProcessingError(batch.Sequence, err)
				continue
			}

			force, disp := converter.Convert(s)
			p := processor.Process(s, force, disp)
			if err := recorder.Append(p); err != nil {
				w.reportProcessingError(batch.Sequence, err)
				continue
			}

			w.lastTimestamp = s.Timestamp
			atomic.AddUint64(&w.processed, 1)
			n++
			w.notifyPoint(p)
		}
	}
	return n
}

// checkSample must be called with drainLock held.
func (w *Wire) checkSample(s types.Sample) error {
	if math.IsNaN(s.Ch0Voltage) || math.IsInf(s.Ch0Voltage, 0) ||
		math.IsNaN(s.Ch1Voltage) || math.IsInf(s.Ch1Voltage, 0) {
		return fmt.Errorf("non-finite voltage at t=%g", s.Timestamp)
	}
	if !(s.Timestamp > w.lastTimestamp) {
		return fmt.Errorf("%w: t=%g after t=%g", types.ErrNonMonotonicTimestamp, s.Timestamp, w.lastTimestamp)
	}
	return nil
}

func (w *Wire) reportProcessingError(sequence uint64, err error) {
	w.notifyError(types.ErrorKindProcessing, err)
	w.NotifyLoggers(types.WarnLevel, "sample rejected",
		"component", w.GetComponentMetadata(),
		"event", "Drain",
		"result", "FAILURE",
		"batch", sequence,
		"error", err,
	)
}
