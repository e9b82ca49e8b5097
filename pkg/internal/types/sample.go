package types

import "context"

// Channel identifies one of the two analog inputs of the rig.
type Channel int

const (
	// ChannelForce is ch0, wired to the load cell.
	ChannelForce Channel = iota
	// ChannelDisplacement is ch1, wired to the extensometer.
	ChannelDisplacement
)

func (c Channel) String() string {
	switch c {
	case ChannelForce:
		return "ch0"
	case ChannelDisplacement:
		return "ch1"
	default:
		return "unknown"
	}
}

// Sample is one timestamped reading of both channels. Timestamps are seconds
// since the start of the session and strictly increase within it.
type Sample struct {
	Timestamp  float64 `json:"t"`
	Ch0Voltage float64 `json:"ch0_v"`
	Ch1Voltage float64 `json:"ch1_v"`
}

// SampleBatch is the unit the producer hands to the ring buffer: one poll result.
type SampleBatch struct {
	Sequence uint64
	Samples  []Sample
}

// SampleSource yields timestamped sample batches. A real DAQ driver or the synthetic
// plug both satisfy it. Poll must not block longer than one acquisition tick.
type SampleSource interface {
	Poll(ctx context.Context) ([]Sample, error)
}
