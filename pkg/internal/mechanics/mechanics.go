// Package mechanics derives stress, strain and rolling stiffness from calibrated
// force and displacement. An Engine is owned by a single processing goroutine.
package mechanics

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

const (
	// MPaPerGPa converts an OLS slope in MPa per unit strain to GPa.
	MPaPerGPa = 1000.0
	// DefaultWindowPoints is the rolling stiffness window used when none is configured.
	DefaultWindowPoints = 20
)

type Engine struct {
	geometry types.SpecimenGeometry
	window   int
	ols      *RollingOLS
}

// New validates the geometry and window length and returns an Engine.
func New(geometry types.SpecimenGeometry, windowPoints int) (*Engine, error) {
	if err := ValidateGeometry(geometry); err != nil {
		return nil, err
	}
	if windowPoints < 2 {
		return nil, types.NewConfigurationError("processing.rolling_window_points", fmt.Sprintf("must be >= 2, got %d", windowPoints))
	}
	return &Engine{
		geometry: geometry,
		window:   windowPoints,
		ols:      NewRollingOLS(windowPoints),
	}, nil
}

// ValidateGeometry requires both specimen dimensions to be positive and finite.
func ValidateGeometry(g types.SpecimenGeometry) error {
	if !(g.CrossSectionAreaMM2 > 0) || math.IsInf(g.CrossSectionAreaMM2, 0) {
		return types.NewConfigurationError("specimen.cross_section_area_mm2", fmt.Sprintf("must be > 0, got %v", g.CrossSectionAreaMM2))
	}
	if !(g.GaugeLengthMM > 0) || math.IsInf(g.GaugeLengthMM, 0) {
		return types.NewConfigurationError("specimen.gauge_length_mm", fmt.Sprintf("must be > 0, got %v", g.GaugeLengthMM))
	}
	return nil
}

func (e *Engine) Geometry() types.SpecimenGeometry { return e.geometry }

func (e *Engine) Window() int { return e.window }

// Process derives a ProcessedPoint: stress = F/A in MPa, strain = d/L. Stiffness is the
// OLS slope of stress on strain over the last window points, in GPa. It is nil until
// the window is full. A full window whose strain has no spread reports 0: the specimen
// is not extending, so no stiffness is measured.
func (e *Engine) Process(s types.Sample, forceN float64, displacementMM float64) types.ProcessedPoint {
	stress := forceN / e.geometry.CrossSectionAreaMM2
	strain := displacementMM / e.geometry.GaugeLengthMM

	e.ols.Add(strain, stress)

	p := types.ProcessedPoint{
		Timestamp:      s.Timestamp,
		ForceN:         forceN,
		DisplacementMM: displacementMM,
		StressMPa:      stress,
		Strain:         strain,
		Ch0Voltage:     s.Ch0Voltage,
		Ch1Voltage:     s.Ch1Voltage,
	}
	if e.ols.Full() {
		gpa := 0.0
		if fit, ok := e.ols.Fit(); ok {
			gpa = fit.Slope / MPaPerGPa
		}
		p.StiffnessGPa = &gpa
	}
	return p
}

// Reset discards the rolling history; called at session start.
func (e *Engine) Reset() {
	e.ols.Reset()
}
