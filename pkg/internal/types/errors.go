package types

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
	// ErrAcquisitionOverrun marks a batch dropped by the ring buffer. It is reported
	// through counters and sensors, never returned to the producer.
	ErrAcquisitionOverrun = errors.New("acquisition overrun")
	// ErrInvalidState is wrapped by every InvalidStateError.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrInsufficientData is the reason attached to an analysis over too few points.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	// ErrNonMonotonicTimestamp is raised when a sample does not advance the session clock.
	ErrNonMonotonicTimestamp = errors.New("non-monotonic sample timestamp")
	ErrSessionClosed         = errors.New("session closed")
	ErrSessionExists         = errors.New("session already exists")
	ErrSessionNotFound       = errors.New("session not found")
)

// ConfigurationError names the offending setting. It only ever surfaces at load time.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError builds a ConfigurationError for field.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// InvalidStateError is returned when a lifecycle command arrives in the wrong state.
type InvalidStateError struct {
	Command string
	State   SessionState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: command not allowed in state %s", e.Command, e.State)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ErrorKind classifies errors delivered through sensor OnError callbacks.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindAcquisition   ErrorKind = "acquisition"
	ErrorKindProcessing    ErrorKind = "processing"
	ErrorKindStorage       ErrorKind = "storage"
)
