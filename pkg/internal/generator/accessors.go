package generator

import (
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// GetComponentMetadata returns the generator metadata.
func (g *Generator) GetComponentMetadata() types.ComponentMetadata {
	g.configLock.Lock()
	defer g.configLock.Unlock()
	return g.componentMetadata
}

// GetPollInterval returns the acquisition tick.
func (g *Generator) GetPollInterval() time.Duration {
	g.configLock.Lock()
	defer g.configLock.Unlock()
	return g.pollInterval
}

// Sequence returns the number of batches pushed since the last Start.
func (g *Generator) Sequence() uint64 {
	return atomic.LoadUint64(&g.sequence)
}

// IsStarted reports whether the generator is running.
func (g *Generator) IsStarted() bool {
	return atomic.LoadInt32(&g.started) == 1
}
