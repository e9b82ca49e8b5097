package orchestrator

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// State returns the current lifecycle state. Safe to call from sensor callbacks.
func (o *Orchestrator) State() types.SessionState {
	o.stateLock.RLock()
	defer o.stateLock.RUnlock()
	return o.state
}

// Session returns a read-only copy of the current session, or nil when Idle.
func (o *Orchestrator) Session() *types.Session {
	o.stateLock.RLock()
	rec := o.recorder
	o.stateLock.RUnlock()
	if rec == nil {
		return nil
	}
	return rec.Snapshot()
}

// Overruns returns the batches dropped during the current session.
func (o *Orchestrator) Overruns() uint64 {
	return o.buffer.Overruns()
}

// PointCount returns the number of points recorded in the current session.
func (o *Orchestrator) PointCount() int {
	o.stateLock.RLock()
	rec := o.recorder
	o.stateLock.RUnlock()
	if rec == nil {
		return 0
	}
	return rec.Len()
}

// NextSessionNumber returns the number the next Start will assign.
func (o *Orchestrator) NextSessionNumber() int {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()
	return o.nextNumber
}

// GetComponentMetadata returns the orchestrator metadata.
func (o *Orchestrator) GetComponentMetadata() types.ComponentMetadata {
	o.metadataLock.Lock()
	defer o.metadataLock.Unlock()
	return o.componentMetadata
}
