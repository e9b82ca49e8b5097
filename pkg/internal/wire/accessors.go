package wire

import (
	"sync/atomic"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// GetComponentMetadata returns the wire metadata.
func (w *Wire) GetComponentMetadata() types.ComponentMetadata {
	w.configLock.Lock()
	defer w.configLock.Unlock()
	return w.componentMetadata
}

// ProcessedCount returns the number of points produced since the last Start.
func (w *Wire) ProcessedCount() uint64 {
	return atomic.LoadUint64(&w.processed)
}

// IsStarted reports whether the tick loop is running.
func (w *Wire) IsStarted() bool {
	return atomic.LoadInt32(&w.started) == 1
}
