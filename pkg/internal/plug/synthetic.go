// Package plug provides sample sources for the acquisition generator. The
// synthetic source stands in for a DAQ card when no hardware is attached.
package plug

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

const (
	DefaultSampleRateHz = 1000.0
	DefaultBatchSize    = 50
)

// SyntheticSource emits batches that follow a Profile, mapped back to raw
// voltages through the rig calibration. Timestamps are derived from the
// sample index so they are exact and strictly increasing.
type SyntheticSource struct {
	componentMetadata types.ComponentMetadata

	mu         sync.Mutex
	calibrator *calibrator.Calibrator
	geometry   types.SpecimenGeometry
	profile    Profile
	sampleRate float64
	batchSize  int
	noiseStd   float64
	humHz      float64
	humVolts   float64
	seed       int64
	rng        *rand.Rand
	index      uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewSyntheticSource builds a source for the given calibration and specimen.
func NewSyntheticSource(cal *calibrator.Calibrator, geometry types.SpecimenGeometry, options ...types.Option[*SyntheticSource]) (*SyntheticSource, error) {
	if cal == nil {
		return nil, types.NewConfigurationError("calibration", "calibrator is required")
	}
	s := &SyntheticSource{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SYNTHETIC_SOURCE",
		},
		calibrator: cal,
		geometry:   geometry,
		profile:    DefaultProfile(),
		sampleRate: DefaultSampleRateHz,
		batchSize:  DefaultBatchSize,
		seed:       1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	switch {
	case s.sampleRate <= 0 || math.IsNaN(s.sampleRate):
		return nil, types.NewConfigurationError("acquisition.sample_rate_hz", "must be > 0")
	case s.batchSize <= 0:
		return nil, types.NewConfigurationError("acquisition.batch_size", "must be > 0")
	case s.geometry.CrossSectionAreaMM2 <= 0:
		return nil, types.NewConfigurationError("specimen.cross_section_area_mm2", "must be > 0")
	case s.geometry.GaugeLengthMM <= 0:
		return nil, types.NewConfigurationError("specimen.gauge_length_mm", "must be > 0")
	case s.profile.StrainRatePerSec <= 0:
		return nil, types.NewConfigurationError("synthetic.strain_rate_per_sec", "must be > 0")
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	return s, nil
}

// Poll returns the next batch_size samples.
func (s *SyntheticSource) Poll(ctx context.Context) ([]types.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Sample, 0, s.batchSize)
	for i := 0; i < s.batchSize; i++ {
		t := float64(s.index) / s.sampleRate
		s.index++

		strain := s.profile.StrainAt(t)
		forceN := s.profile.StressAt(strain) * s.geometry.CrossSectionAreaMM2
		dispMM := strain * s.geometry.GaugeLengthMM

		v0, err := s.calibrator.EngineeringToVoltage(types.ChannelForce, forceN)
		if err != nil {
			return nil, err
		}
		v1, err := s.calibrator.EngineeringToVoltage(types.ChannelDisplacement, dispMM)
		if err != nil {
			return nil, err
		}

		if s.humVolts != 0 {
			hum := s.humVolts * math.Sin(2*math.Pi*s.humHz*t)
			v0 += hum
			v1 += hum
		}
		if s.noiseStd > 0 {
			v0 += s.rng.NormFloat64() * s.noiseStd
			v1 += s.rng.NormFloat64() * s.noiseStd
		}

		out = append(out, types.Sample{Timestamp: t, Ch0Voltage: v0, Ch1Voltage: v1})
	}
	return out, nil
}

// Reset rewinds the source to t=0 and reseeds the noise generator.
func (s *SyntheticSource) Reset() {
	s.mu.Lock()
	s.index = 0
	s.rng = rand.New(rand.NewSource(s.seed))
	s.mu.Unlock()

	s.NotifyLoggers(types.DebugLevel, "synthetic source rewound",
		"component", s.componentMetadata,
		"event", "Reset",
		"result", "SUCCESS",
	)
}

// Emitted returns the number of samples produced since the last Reset.
func (s *SyntheticSource) Emitted() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// SampleRate returns the configured sample rate in Hz.
func (s *SyntheticSource) SampleRate() float64 { return s.sampleRate }

// Profile returns the curve the source follows.
func (s *SyntheticSource) Profile() Profile { return s.profile }

// GetComponentMetadata returns the source metadata.
func (s *SyntheticSource) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// FuncSource adapts a plain function to types.SampleSource.
type FuncSource func(ctx context.Context) ([]types.Sample, error)

// Poll calls f.
func (f FuncSource) Poll(ctx context.Context) ([]types.Sample, error) {
	return f(ctx)
}
