// Package config loads rig settings from a YAML, TOML or JSON file with
// TENSILERIG_ environment overrides and validates them before any component is
// built from them.
package config

import (
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/plug"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// EnvPrefix prefixes every environment override, e.g. TENSILERIG_STORAGE_DRIVER.
const EnvPrefix = "TENSILERIG"

// Storage drivers.
const (
	DriverNone    = "none"
	DriverSQLite  = "sqlite"
	DriverParquet = "parquet"
)

// Settings is the complete rig configuration.
type Settings struct {
	Calibration types.CalibrationParams `mapstructure:"calibration" json:"calibration"`
	Specimen    types.SpecimenGeometry  `mapstructure:"specimen" json:"specimen"`
	Acquisition AcquisitionSettings     `mapstructure:"acquisition" json:"acquisition"`
	Processing  ProcessingSettings      `mapstructure:"processing" json:"processing"`
	Analysis    AnalysisSettings        `mapstructure:"analysis" json:"analysis"`
	Synthetic   SyntheticSettings       `mapstructure:"synthetic" json:"synthetic"`
	Storage     StorageSettings         `mapstructure:"storage" json:"storage"`
	Log         LogSettings             `mapstructure:"log" json:"log"`
}

type AcquisitionSettings struct {
	SampleRateHz          float64       `mapstructure:"sample_rate_hz" json:"sample_rate_hz"`
	BatchSize             int           `mapstructure:"batch_size" json:"batch_size"`
	BufferCapacityBatches int           `mapstructure:"buffer_capacity_batches" json:"buffer_capacity_batches"`
	PollInterval          time.Duration `mapstructure:"poll_interval" json:"poll_interval"`
	ProcessInterval       time.Duration `mapstructure:"process_interval" json:"process_interval"`
}

type ProcessingSettings struct {
	RollingWindowPoints int `mapstructure:"rolling_window_points" json:"rolling_window_points"`
}

type AnalysisSettings struct {
	MinAnalysisPoints      int     `mapstructure:"min_analysis_points" json:"min_analysis_points"`
	ElasticR2Threshold     float64 `mapstructure:"elastic_r2_threshold" json:"elastic_r2_threshold"`
	ElasticMinPoints       int     `mapstructure:"elastic_min_points" json:"elastic_min_points"`
	ElasticOriginTolerance float64 `mapstructure:"elastic_origin_tolerance" json:"elastic_origin_tolerance"`
	YieldOffsetStrain      float64 `mapstructure:"yield_offset_strain" json:"yield_offset_strain"`
	FractureDropFraction   float64 `mapstructure:"fracture_drop_fraction" json:"fracture_drop_fraction"`
	FractureWindowPoints   int     `mapstructure:"fracture_window_points" json:"fracture_window_points"`
}

// SyntheticSettings drives the built-in simulated sample source.
type SyntheticSettings struct {
	Profile  plug.Profile `mapstructure:"profile" json:"profile"`
	NoiseStd float64      `mapstructure:"noise_std_volts" json:"noise_std_volts"`
	Seed     int64        `mapstructure:"seed" json:"seed"`
	HumHz    float64      `mapstructure:"hum_hz" json:"hum_hz"`
	HumVolts float64      `mapstructure:"hum_volts" json:"hum_volts"`
}

type StorageSettings struct {
	Driver      string     `mapstructure:"driver" json:"driver"`
	Path        string     `mapstructure:"path" json:"path"`
	Compression string     `mapstructure:"compression" json:"compression"`
	S3          S3Settings `mapstructure:"s3" json:"s3"`
}

// S3Settings is optional. Parquet session files are also uploaded when Bucket is set.
type S3Settings struct {
	Bucket          string `mapstructure:"bucket" json:"bucket"`
	Prefix          string `mapstructure:"prefix" json:"prefix"`
	Region          string `mapstructure:"region" json:"region"`
	Endpoint        string `mapstructure:"endpoint" json:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id" json:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"-"`
}

type LogSettings struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}
