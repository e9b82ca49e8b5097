package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/analyzer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/generator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/orchestrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/plug"
	"github.com/joeydtaylor/tensilerig/pkg/internal/wire"
	"github.com/spf13/viper"
)

// ConfigName is the file base name searched for when no explicit path is given.
const ConfigName = "tensilerig"

// Load reads settings from path, or from tensilerig.{yaml,toml,json} in the
// working directory, ./configs or $HOME/.tensilerig when path is empty. A
// missing search-path file is not an error; defaults apply. The result is
// validated.
func Load(path string) (*Settings, error) {
	s, _, err := load(path)
	return s, err
}

func load(path string) (*Settings, *viper.Viper, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	s, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.tensilerig")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultValues(v)
	return v
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the built-in settings without reading any file or the environment.
func Default() *Settings {
	v := viper.New()
	setDefaultValues(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("calibration.ch0.slope", 1000.0)
	v.SetDefault("calibration.ch0.offset", 0.0)
	v.SetDefault("calibration.ch0.unit", "N")
	v.SetDefault("calibration.ch1.slope", 10.0)
	v.SetDefault("calibration.ch1.offset", 0.0)
	v.SetDefault("calibration.ch1.unit", "mm")

	v.SetDefault("specimen.cross_section_area_mm2", 10.0)
	v.SetDefault("specimen.gauge_length_mm", 50.0)
	v.SetDefault("specimen.material", "steel")

	v.SetDefault("acquisition.sample_rate_hz", plug.DefaultSampleRateHz)
	v.SetDefault("acquisition.batch_size", plug.DefaultBatchSize)
	v.SetDefault("acquisition.buffer_capacity_batches", orchestrator.DefaultBufferCapacity)
	v.SetDefault("acquisition.poll_interval", generator.DefaultPollInterval.String())
	v.SetDefault("acquisition.process_interval", wire.DefaultProcessInterval.String())

	v.SetDefault("processing.rolling_window_points", mechanics.DefaultWindowPoints)

	v.SetDefault("analysis.min_analysis_points", analyzer.DefaultMinPoints)
	v.SetDefault("analysis.elastic_r2_threshold", analyzer.DefaultR2Threshold)
	v.SetDefault("analysis.elastic_min_points", analyzer.DefaultElasticMinPoints)
	v.SetDefault("analysis.elastic_origin_tolerance", analyzer.DefaultElasticOriginFraction)
	v.SetDefault("analysis.yield_offset_strain", analyzer.DefaultYieldOffset)
	v.SetDefault("analysis.fracture_drop_fraction", analyzer.DefaultFractureDropFraction)
	v.SetDefault("analysis.fracture_window_points", analyzer.DefaultFractureWindow)

	p := plug.DefaultProfile()
	v.SetDefault("synthetic.profile.modulus_gpa", p.ModulusGPa)
	v.SetDefault("synthetic.profile.yield_stress_mpa", p.YieldStressMPa)
	v.SetDefault("synthetic.profile.plateau_strain", p.PlateauStrain)
	v.SetDefault("synthetic.profile.ultimate_stress_mpa", p.UltimateStressMPa)
	v.SetDefault("synthetic.profile.ultimate_strain", p.UltimateStrain)
	v.SetDefault("synthetic.profile.fracture_strain", p.FractureStrain)
	v.SetDefault("synthetic.profile.necking_drop", p.NeckingDrop)
	v.SetDefault("synthetic.profile.strain_rate_per_sec", p.StrainRatePerSec)
	v.SetDefault("synthetic.noise_std_volts", 0.0)
	v.SetDefault("synthetic.seed", 1)
	v.SetDefault("synthetic.hum_hz", 0.0)
	v.SetDefault("synthetic.hum_volts", 0.0)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "tensilerig.db")
	v.SetDefault("storage.compression", "zstd")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "sessions/")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}
