// Package calibrator converts raw channel voltages into engineering units using a
// per-channel affine transform: value = voltage*slope + offset.
package calibrator

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Calibrator is stateless after construction and safe for concurrent use.
type Calibrator struct {
	params types.CalibrationParams
}

// New validates params and returns a Calibrator. A zero or non-finite slope is
// rejected because it would make the inverse transform undefined.
func New(params types.CalibrationParams) (*Calibrator, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}
	return &Calibrator{params: params}, nil
}

// Validate checks both channels and names the first offending field.
func Validate(params types.CalibrationParams) error {
	for _, ch := range []struct {
		name string
		cal  types.ChannelCalibration
	}{{"ch0", params.Ch0}, {"ch1", params.Ch1}} {
		if ch.cal.Slope == 0 || math.IsNaN(ch.cal.Slope) || math.IsInf(ch.cal.Slope, 0) {
			return types.NewConfigurationError("calibration."+ch.name+".slope", fmt.Sprintf("must be finite and non-zero, got %v", ch.cal.Slope))
		}
		if math.IsNaN(ch.cal.Offset) || math.IsInf(ch.cal.Offset, 0) {
			return types.NewConfigurationError("calibration."+ch.name+".offset", fmt.Sprintf("must be finite, got %v", ch.cal.Offset))
		}
	}
	return nil
}

// Params returns the calibration in use.
func (c *Calibrator) Params() types.CalibrationParams {
	return c.params
}

func (c *Calibrator) channel(ch types.Channel) (types.ChannelCalibration, error) {
	switch ch {
	case types.ChannelForce:
		return c.params.Ch0, nil
	case types.ChannelDisplacement:
		return c.params.Ch1, nil
	default:
		return types.ChannelCalibration{}, fmt.Errorf("unknown channel %d", int(ch))
	}
}

// VoltageToEngineering applies voltage*slope + offset for the given channel.
func (c *Calibrator) VoltageToEngineering(ch types.Channel, voltage float64) (float64, error) {
	cal, err := c.channel(ch)
	if err != nil {
		return 0, err
	}
	return voltage*cal.Slope + cal.Offset, nil
}

// EngineeringToVoltage is the inverse of VoltageToEngineering.
func (c *Calibrator) EngineeringToVoltage(ch types.Channel, value float64) (float64, error) {
	cal, err := c.channel(ch)
	if err != nil {
		return 0, err
	}
	return (value - cal.Offset) / cal.Slope, nil
}

// Convert maps both channels of a sample: ch0 to newtons, ch1 to millimetres.
func (c *Calibrator) Convert(s types.Sample) (forceN float64, displacementMM float64) {
	forceN = s.Ch0Voltage*c.params.Ch0.Slope + c.params.Ch0.Offset
	displacementMM = s.Ch1Voltage*c.params.Ch1.Slope + c.params.Ch1.Offset
	return forceN, displacementMM
}
