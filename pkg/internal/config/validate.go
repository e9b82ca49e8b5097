package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
	"dpanic": true, "panic": true, "fatal": true,
}

// Validate checks every setting and returns the first *types.ConfigurationError found.
func (s *Settings) Validate() error {
	if err := calibrator.Validate(s.Calibration); err != nil {
		return err
	}
	if err := mechanics.ValidateGeometry(s.Specimen); err != nil {
		return err
	}

	a := s.Acquisition
	if !positive(a.SampleRateHz) {
		return invalid("acquisition.sample_rate_hz", "must be > 0, got %v", a.SampleRateHz)
	}
	if a.BatchSize < 1 {
		return invalid("acquisition.batch_size", "must be >= 1, got %d", a.BatchSize)
	}
	if a.BufferCapacityBatches < 1 {
		return invalid("acquisition.buffer_capacity_batches", "must be >= 1, got %d", a.BufferCapacityBatches)
	}
	if a.PollInterval <= 0 {
		return invalid("acquisition.poll_interval", "must be > 0, got %s", a.PollInterval)
	}
	if a.ProcessInterval <= 0 {
		return invalid("acquisition.process_interval", "must be > 0, got %s", a.ProcessInterval)
	}

	if s.Processing.RollingWindowPoints < 2 {
		return invalid("processing.rolling_window_points", "must be >= 2, got %d", s.Processing.RollingWindowPoints)
	}

	if err := s.Analysis.validate(); err != nil {
		return err
	}
	if err := s.Synthetic.validate(); err != nil {
		return err
	}
	if err := s.Storage.validate(); err != nil {
		return err
	}

	if !logLevels[strings.ToLower(s.Log.Level)] {
		return invalid("log.level", "unknown level %q", s.Log.Level)
	}
	return nil
}

func (a AnalysisSettings) validate() error {
	if a.MinAnalysisPoints < 2 {
		return invalid("analysis.min_analysis_points", "must be >= 2, got %d", a.MinAnalysisPoints)
	}
	if !(a.ElasticR2Threshold > 0 && a.ElasticR2Threshold <= 1) {
		return invalid("analysis.elastic_r2_threshold", "must be in (0, 1], got %v", a.ElasticR2Threshold)
	}
	if a.ElasticMinPoints < 3 {
		return invalid("analysis.elastic_min_points", "must be >= 3, got %d", a.ElasticMinPoints)
	}
	if !(a.ElasticOriginTolerance > 0 && a.ElasticOriginTolerance < 1) {
		return invalid("analysis.elastic_origin_tolerance", "must be in (0, 1), got %v", a.ElasticOriginTolerance)
	}
	if !(a.YieldOffsetStrain > 0) || math.IsInf(a.YieldOffsetStrain, 0) {
		return invalid("analysis.yield_offset_strain", "must be > 0, got %v", a.YieldOffsetStrain)
	}
	if !(a.FractureDropFraction > 0 && a.FractureDropFraction < 1) {
		return invalid("analysis.fracture_drop_fraction", "must be in (0, 1), got %v", a.FractureDropFraction)
	}
	if a.FractureWindowPoints < 1 {
		return invalid("analysis.fracture_window_points", "must be >= 1, got %d", a.FractureWindowPoints)
	}
	return nil
}

func (y SyntheticSettings) validate() error {
	p := y.Profile
	if !positive(p.ModulusGPa) {
		return invalid("synthetic.profile.modulus_gpa", "must be > 0, got %v", p.ModulusGPa)
	}
	if !positive(p.StrainRatePerSec) {
		return invalid("synthetic.profile.strain_rate_per_sec", "must be > 0, got %v", p.StrainRatePerSec)
	}
	if !(p.UltimateStressMPa >= p.YieldStressMPa) {
		return invalid("synthetic.profile.ultimate_stress_mpa", "must be >= yield_stress_mpa")
	}
	if !(p.YieldStrain() <= p.PlateauStrain && p.PlateauStrain <= p.UltimateStrain && p.UltimateStrain <= p.FractureStrain) {
		return invalid("synthetic.profile", "strains must satisfy yield <= plateau <= ultimate <= fracture")
	}
	if y.NoiseStd < 0 {
		return invalid("synthetic.noise_std_volts", "must be >= 0, got %v", y.NoiseStd)
	}
	return nil
}

func (st StorageSettings) validate() error {
	switch strings.ToLower(st.Driver) {
	case DriverNone:
		return nil
	case DriverSQLite, DriverParquet:
	default:
		return invalid("storage.driver", "unknown driver %q", st.Driver)
	}
	if strings.TrimSpace(st.Path) == "" {
		return invalid("storage.path", "required for driver %q", st.Driver)
	}
	if _, err := seriescodec.ParseCompression(st.Compression); err != nil {
		return invalid("storage.compression", "%v", err)
	}
	if st.S3.Bucket != "" && strings.ToLower(st.Driver) != DriverParquet {
		return invalid("storage.s3.bucket", "object upload is only supported by the parquet driver")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(field, format string, args ...interface{}) error {
	return types.NewConfigurationError(field, fmt.Sprintf(format, args...))
}
