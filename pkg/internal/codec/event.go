package codec

import (
	"io"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Event types written to the result stream.
const (
	EventStarted   = "started"
	EventStopped   = "stopped"
	EventState     = "state"
	EventPoint     = "point"
	EventOverrun   = "overrun"
	EventAnalyzed  = "analyzed"
	EventPersisted = "persisted"
	EventError     = "error"
)

// Event is one line of the result stream. Only the fields relevant to Type are set.
type Event struct {
	Type      string                `json:"type"`
	Time      time.Time             `json:"time"`
	Component string                `json:"component,omitempty"`
	From      string                `json:"from,omitempty"`
	To        string                `json:"to,omitempty"`
	Point     *types.ProcessedPoint `json:"point,omitempty"`
	Overruns  uint64                `json:"overruns,omitempty"`
	Result    *types.AnalysisResult `json:"result,omitempty"`
	SessionID string                `json:"session_id,omitempty"`
	Kind      types.ErrorKind       `json:"kind,omitempty"`
	Detail    string                `json:"detail,omitempty"`
}

// EventEncoder writes events as JSON lines. It is safe for concurrent use; sensor
// callbacks from the wire and the orchestrator may interleave.
type EventEncoder struct {
	mu          sync.Mutex
	w           io.Writer
	enc         *JSONEncoder[Event]
	now         func() time.Time
	pointStride int
	points      uint64
	written     uint64
	err         error
}

type EventEncoderOption func(*EventEncoder)

// WithPointStride writes only every n-th point event. Lifecycle events are never dropped.
func WithPointStride(n int) EventEncoderOption {
	return func(e *EventEncoder) {
		if n > 0 {
			e.pointStride = n
		}
	}
}

// WithEventClock overrides the event timestamp source.
func WithEventClock(now func() time.Time) EventEncoderOption {
	return func(e *EventEncoder) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEventEncoder(w io.Writer, options ...EventEncoderOption) *EventEncoder {
	e := &EventEncoder{
		w:           w,
		enc:         NewJSONEncoder[Event](),
		now:         func() time.Time { return time.Now().UTC() },
		pointStride: 1,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Encode writes ev, stamping Time when it is zero. After the first write error
// every later call returns that error without writing.
func (e *EventEncoder) Encode(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return e.err
	}
	if ev.Type == EventPoint {
		e.points++
		if (e.points-1)%uint64(e.pointStride) != 0 {
			return nil
		}
	}
	if ev.Time.IsZero() {
		ev.Time = e.now()
	}
	if err := e.enc.Encode(e.w, ev); err != nil {
		e.err = err
		return err
	}
	e.written++
	return nil
}

// Written returns the number of events written.
func (e *EventEncoder) Written() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.written
}

// Err returns the first write error, if any.
func (e *EventEncoder) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Attach registers callbacks on s that stream every result event through e.
func (e *EventEncoder) Attach(s types.Sensor) {
	s.RegisterOnPoint(func(c types.ComponentMetadata, p types.ProcessedPoint) {
		_ = e.Encode(Event{Type: EventPoint, Component: c.Type, Point: &p})
	})
	s.RegisterOnOverrun(func(c types.ComponentMetadata, total uint64) {
		_ = e.Encode(Event{Type: EventOverrun, Component: c.Type, Overruns: total})
	})
	s.RegisterOnAnalyzed(func(c types.ComponentMetadata, result types.AnalysisResult) {
		_ = e.Encode(Event{Type: EventAnalyzed, Component: c.Type, Result: &result})
	})
	s.RegisterOnPersisted(func(c types.ComponentMetadata, id string) {
		_ = e.Encode(Event{Type: EventPersisted, Component: c.Type, SessionID: id})
	})
	s.RegisterOnError(func(c types.ComponentMetadata, kind types.ErrorKind, err error) {
		ev := Event{Type: EventError, Component: c.Type, Kind: kind}
		if err != nil {
			ev.Detail = err.Error()
		}
		_ = e.Encode(ev)
	})
	s.RegisterOnStateChange(func(c types.ComponentMetadata, from, to types.SessionState) {
		_ = e.Encode(Event{Type: EventState, Component: c.Type, From: from.String(), To: to.String()})
		switch {
		case to == types.StateRunning:
			_ = e.Encode(Event{Type: EventStarted, Component: c.Type})
		case from == types.StateRunning && to == types.StateStopped:
			_ = e.Encode(Event{Type: EventStopped, Component: c.Type})
		}
	})
}
