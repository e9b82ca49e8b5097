package plug

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(hz float64) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.sampleRate = hz
	}
}

// WithBatchSize sets how many samples each Poll returns.
func WithBatchSize(n int) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.batchSize = n
	}
}

// WithProfile replaces the default stress-strain curve.
func WithProfile(p Profile) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.profile = p
	}
}

// WithNoise adds Gaussian noise with the given standard deviation in volts.
func WithNoise(stdVolts float64, seed int64) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.noiseStd = stdVolts
		s.seed = seed
	}
}

// WithHum superimposes a sinusoidal interference on both channels.
func WithHum(freqHz float64, amplitudeVolts float64) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.humHz = freqHz
		s.humVolts = amplitudeVolts
	}
}

// WithLogger adds loggers to the source.
func WithLogger(loggers ...types.Logger) types.Option[*SyntheticSource] {
	return func(s *SyntheticSource) {
		s.ConnectLogger(loggers...)
	}
}
