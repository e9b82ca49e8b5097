package ringbuffer_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func batch(seq uint64) types.SampleBatch {
	return types.SampleBatch{Sequence: seq, Samples: []types.Sample{{Timestamp: float64(seq)}}}
}

func TestNew_RejectsZeroCapacity(t *testing.T) {
	_, err := ringbuffer.New(0)
	if err == nil {
		t.Fatalf("expected error for zero capacity")
	}
	var cfgErr *types.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "acquisition.buffer_capacity_batches" {
		t.Fatalf("expected ConfigurationError naming the field, got %v", err)
	}
	if !errors.Is(err, types.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration in chain")
	}
}

func TestRingBuffer_FIFO(t *testing.T) {
	rb, err := ringbuffer.New(4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for i := uint64(1); i <= 3; i++ {
		if dropped := rb.Push(batch(i)); dropped {
			t.Fatalf("unexpected drop at %d", i)
		}
	}
	if rb.Len() != 3 || rb.Cap() != 4 {
		t.Fatalf("unexpected len/cap %d/%d", rb.Len(), rb.Cap())
	}

	got := rb.PopAll()
	for i, b := range got {
		if b.Sequence != uint64(i+1) {
			t.Fatalf("position %d: expected sequence %d, got %d", i, i+1, b.Sequence)
		}
	}
	if rb.Len() != 0 || rb.PopAll() != nil {
		t.Fatalf("expected empty buffer after PopAll")
	}
}

func TestRingBuffer_OverrunDropsOldest(t *testing.T) {
	const capacity, pushes = 5, 12
	rb, _ := ringbuffer.New(capacity)

	dropped := 0
	for i := uint64(1); i <= pushes; i++ {
		if rb.Push(batch(i)) {
			dropped++
		}
	}

	if dropped != pushes-capacity {
		t.Fatalf("expected %d drops reported, got %d", pushes-capacity, dropped)
	}
	if rb.Overruns() != pushes-capacity {
		t.Fatalf("expected overrun count %d, got %d", pushes-capacity, rb.Overruns())
	}

	got := rb.PopAll()
	if len(got) != capacity {
		t.Fatalf("expected %d retained batches, got %d", capacity, len(got))
	}
	for i, b := range got {
		want := uint64(pushes-capacity+1+i)
		if b.Sequence != want {
			t.Fatalf("position %d: expected sequence %d, got %d", i, want, b.Sequence)
		}
	}
}

func TestRingBuffer_WrapAfterPartialDrain(t *testing.T) {
	rb, _ := ringbuffer.New(3)
	rb.Push(batch(1))
	rb.Push(batch(2))
	_ = rb.PopAll()
	rb.Push(batch(3))
	rb.Push(batch(4))
	rb.Push(batch(5))
	rb.Push(batch(6))

	got := rb.PopAll()
	if len(got) != 3 || got[0].Sequence != 4 || got[2].Sequence != 6 {
		t.Fatalf("unexpected contents: %+v", got)
	}
	if rb.Overruns() != 1 {
		t.Fatalf("expected 1 overrun, got %d", rb.Overruns())
	}

	rb.Clear()
	if rb.Overruns() != 0 || rb.Len() != 0 {
		t.Fatalf("expected Clear to reset state")
	}
}

func TestRingBuffer_ConcurrentProducerConsumer(t *testing.T) {
	rb, _ := ringbuffer.New(8)
	const total = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= total; i++ {
			rb.Push(batch(i))
		}
	}()

	received := 0
	var last uint64
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	drain := func() {
		for _, b := range rb.PopAll() {
			if b.Sequence <= last {
				t.Errorf("out of order: %d after %d", b.Sequence, last)
			}
			last = b.Sequence
			received++
		}
	}

	for {
		select {
		case <-done:
			drain()
			if uint64(received)+rb.Overruns() != total {
				t.Fatalf("received %d + dropped %d != %d", received, rb.Overruns(), total)
			}
			return
		default:
			drain()
		}
	}
}
