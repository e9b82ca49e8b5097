// Package ringbuffer holds sample batches between the acquisition producer and the
// processing consumer. It never blocks the producer: when full, the oldest unconsumed
// batch is dropped and counted as an overrun.
package ringbuffer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// RingBuffer is a bounded FIFO of sample batches with drop-oldest overflow.
type RingBuffer struct {
	mu       sync.Mutex
	slots    []types.SampleBatch
	head     int
	count    int
	overruns uint64
}

// New returns a buffer holding at most capacity batches.
func New(capacity int) (*RingBuffer, error) {
	if capacity < 1 {
		return nil, types.NewConfigurationError("acquisition.buffer_capacity_batches", fmt.Sprintf("must be >= 1, got %d", capacity))
	}
	return &RingBuffer{slots: make([]types.SampleBatch, capacity)}, nil
}

// Push appends batch. If the buffer is full the oldest batch is discarded, the
// overrun counter is incremented and true is returned.
func (r *RingBuffer) Push(batch types.SampleBatch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.slots)
	if r.count == capacity {
		r.slots[r.head] = types.SampleBatch{}
		r.head = (r.head + 1) % capacity
		r.count--
		atomic.AddUint64(&r.overruns, 1)
		r.slots[(r.head+r.count)%capacity] = batch
		r.count++
		return true
	}

	r.slots[(r.head+r.count)%capacity] = batch
	r.count++
	return false
}

// PopAll removes and returns every buffered batch in FIFO order.
func (r *RingBuffer) PopAll() []types.SampleBatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return nil
	}
	out := make([]types.SampleBatch, r.count)
	capacity := len(r.slots)
	for i := 0; i < r.count; i++ {
		idx := (r.head + i) % capacity
		out[i] = r.slots[idx]
		r.slots[idx] = types.SampleBatch{}
	}
	r.head = 0
	r.count = 0
	return out
}

// Clear discards buffered batches and resets the overrun counter.
func (r *RingBuffer) Clear() {
	r.mu.Lock()
	for i := range r.slots {
		r.slots[i] = types.SampleBatch{}
	}
	r.head = 0
	r.count = 0
	r.mu.Unlock()
	atomic.StoreUint64(&r.overruns, 0)
}

// Overruns returns the number of batches dropped since creation or the last Clear.
func (r *RingBuffer) Overruns() uint64 {
	return atomic.LoadUint64(&r.overruns)
}

func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *RingBuffer) Cap() int {
	return len(r.slots)
}
