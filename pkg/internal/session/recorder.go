// Package session accumulates processed points into the live session and hands out
// read-only snapshots once it is closed.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Recorder owns one Session. The processing wire appends while the session is open;
// after Close the points are frozen and only the analysis can still be attached.
type Recorder struct {
	mu            sync.RWMutex
	session       types.Session
	lastTimestamp float64
	hasLast       bool
}

// NewRecorder opens a session. meta is copied.
func NewRecorder(id string, number int, startedAt time.Time, meta map[string]string) *Recorder {
	md := make(map[string]string, len(meta))
	for k, v := range meta {
		md[k] = v
	}
	return &Recorder{
		session: types.Session{
			ID:        id,
			Number:    number,
			StartedAt: startedAt,
			Metadata:  md,
			Points:    make([]types.ProcessedPoint, 0, 4096),
		},
	}
}

// Append adds a point. Timestamps must strictly increase.
func (r *Recorder) Append(p types.ProcessedPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.Closed() {
		return fmt.Errorf("append to session %s: %w", r.session.ID, types.ErrSessionClosed)
	}
	if r.hasLast && p.Timestamp <= r.lastTimestamp {
		return fmt.Errorf("append t=%v after t=%v: %w", p.Timestamp, r.lastTimestamp, types.ErrNonMonotonicTimestamp)
	}
	r.session.Points = append(r.session.Points, p)
	r.lastTimestamp = p.Timestamp
	r.hasLast = true
	return nil
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.session.Points)
}

func (r *Recorder) ID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session.ID
}

// Close freezes the session. Closing twice keeps the first end time.
func (r *Recorder) Close(endedAt time.Time, overruns uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session.Closed() {
		return
	}
	r.session.EndedAt = endedAt
	r.session.Overruns = overruns
}

func (r *Recorder) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session.Closed()
}

// Annotate attaches an analysis result to a closed session.
func (r *Recorder) Annotate(result types.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.session.Closed() {
		return fmt.Errorf("annotate open session %s: %w", r.session.ID, types.ErrInvalidState)
	}
	res := result
	r.session.Analysis = &res
	return nil
}

// Points returns a copy of the recorded points.
func (r *Recorder) Points() []types.ProcessedPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.ProcessedPoint(nil), r.session.Points...)
}

// Snapshot returns a deep copy of the session that callers may keep.
func (r *Recorder) Snapshot() *types.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Clone(&r.session)
}

// Clone deep-copies s.
func Clone(s *types.Session) *types.Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Metadata = make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		out.Metadata[k] = v
	}
	out.Points = make([]types.ProcessedPoint, len(s.Points))
	for i, p := range s.Points {
		if p.StiffnessGPa != nil {
			v := *p.StiffnessGPa
			p.StiffnessGPa = &v
		}
		out.Points[i] = p
	}
	if s.Analysis != nil {
		a := cloneAnalysis(*s.Analysis)
		out.Analysis = &a
	}
	return &out
}

func cloneAnalysis(a types.AnalysisResult) types.AnalysisResult {
	out := a
	if a.Elastic != nil {
		v := *a.Elastic
		out.Elastic = &v
	}
	if a.Yield != nil {
		v := *a.Yield
		out.Yield = &v
	}
	if a.Ultimate != nil {
		v := *a.Ultimate
		out.Ultimate = &v
	}
	if a.Fracture != nil {
		v := *a.Fracture
		out.Fracture = &v
	}
	if a.Plastic != nil {
		v := *a.Plastic
		out.Plastic = &v
	}
	if a.Diagnostics != nil {
		v := *a.Diagnostics
		out.Diagnostics = &v
	}
	if a.Outcomes != nil {
		out.Outcomes = make(map[types.Region]types.RegionOutcome, len(a.Outcomes))
		for k, v := range a.Outcomes {
			out.Outcomes[k] = v
		}
	}
	return out
}
