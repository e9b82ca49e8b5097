package types

import "context"

// Orchestrator owns the live session and drives it through
// Idle -> Running -> Stopped -> Analyzed -> Idle.
type Orchestrator interface {
	Start(ctx context.Context, meta map[string]string) error
	Stop() error
	Analyze() (AnalysisResult, error)
	Persist(ctx context.Context) error
	Discard()
	State() SessionState
	Session() *Session
	Overruns() uint64
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
}
