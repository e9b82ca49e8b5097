package types

import (
	"context"
	"time"
)

// Metadata keys written into every session.
const (
	MetaMaterial            = "material"
	MetaCrossSectionAreaMM2 = "cross_section_area_mm2"
	MetaGaugeLengthMM       = "gauge_length_mm"
	MetaSampleRateHz        = "sample_rate_hz"
	MetaOperator            = "operator"
	MetaSpecimenID          = "specimen_id"
)

// SessionState is the lifecycle state of the orchestrator.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRunning
	StateStopped
	StateAnalyzed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateAnalyzed:
		return "analyzed"
	default:
		return "unknown"
	}
}

// Session is one test run from start to stop. Once closed it is read-only.
type Session struct {
	ID        string            `json:"id"`
	Number    int               `json:"number"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
	Metadata  map[string]string `json:"metadata"`
	Points    []ProcessedPoint  `json:"points"`
	Analysis  *AnalysisResult   `json:"analysis,omitempty"`
	Overruns  uint64            `json:"overruns"`
}

// Closed reports whether the session has an end time.
func (s *Session) Closed() bool {
	return s != nil && !s.EndedAt.IsZero()
}

// SessionSummary is the listing view of a stored session.
type SessionSummary struct {
	ID        string         `json:"id"`
	Number    int            `json:"number"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Material  string         `json:"material"`
	Points    int            `json:"points"`
	Status    AnalysisStatus `json:"status,omitempty"`
}

// SessionStore persists closed sessions. Sessions are additive: saving an id that
// already exists fails with ErrSessionExists and leaves the stored record untouched.
type SessionStore interface {
	SaveSession(ctx context.Context, s *Session) error
	ListSessions(ctx context.Context) ([]SessionSummary, error)
	LoadSession(ctx context.Context, id string) (*Session, error)
	Close() error
}

// PointRecorder accumulates processed points into the live session.
type PointRecorder interface {
	Append(p ProcessedPoint) error
	Len() int
}
