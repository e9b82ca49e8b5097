package calibrator_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func params() types.CalibrationParams {
	return types.CalibrationParams{
		Ch0: types.ChannelCalibration{Slope: 1000, Offset: -2.5, Unit: "N"},
		Ch1: types.ChannelCalibration{Slope: 10, Offset: 0.1, Unit: "mm"},
	}
}

func TestNew_RejectsZeroSlope(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*types.CalibrationParams)
		field string
	}{
		{"ch0 zero", func(p *types.CalibrationParams) { p.Ch0.Slope = 0 }, "calibration.ch0.slope"},
		{"ch1 zero", func(p *types.CalibrationParams) { p.Ch1.Slope = 0 }, "calibration.ch1.slope"},
		{"ch0 nan", func(p *types.CalibrationParams) { p.Ch0.Slope = math.NaN() }, "calibration.ch0.slope"},
		{"ch1 inf offset", func(p *types.CalibrationParams) { p.Ch1.Offset = math.Inf(1) }, "calibration.ch1.offset"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := params()
			tc.mut(&p)
			_, err := calibrator.New(p)
			var cfgErr *types.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestCalibrator_RoundTrip(t *testing.T) {
	c, err := calibrator.New(params())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, ch := range []types.Channel{types.ChannelForce, types.ChannelDisplacement} {
		for _, v := range []float64{-10, -0.37, 0, 0.001, 4.2, 9.99} {
			eng, err := c.VoltageToEngineering(ch, v)
			if err != nil {
				t.Fatalf("VoltageToEngineering error: %v", err)
			}
			back, err := c.EngineeringToVoltage(ch, eng)
			if err != nil {
				t.Fatalf("EngineeringToVoltage error: %v", err)
			}
			if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
				t.Fatalf("%s: round trip of %v gave %v", ch, v, back)
			}
		}
	}
}

func TestCalibrator_Convert(t *testing.T) {
	c, _ := calibrator.New(params())
	force, disp := c.Convert(types.Sample{Timestamp: 1, Ch0Voltage: 2, Ch1Voltage: 0.5})
	if force != 1997.5 {
		t.Fatalf("expected force 1997.5, got %v", force)
	}
	if math.Abs(disp-5.1) > 1e-12 {
		t.Fatalf("expected displacement 5.1, got %v", disp)
	}
}

func TestCalibrator_UnknownChannel(t *testing.T) {
	c, _ := calibrator.New(params())
	if _, err := c.VoltageToEngineering(types.Channel(7), 1); err == nil {
		t.Fatalf("expected error for unknown channel")
	}
}
