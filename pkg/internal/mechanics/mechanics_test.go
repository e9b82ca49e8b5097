package mechanics_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

var geometry = types.SpecimenGeometry{CrossSectionAreaMM2: 10, GaugeLengthMM: 50, Material: "steel"}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name   string
		g      types.SpecimenGeometry
		window int
		field  string
	}{
		{"zero area", types.SpecimenGeometry{CrossSectionAreaMM2: 0, GaugeLengthMM: 50}, 10, "specimen.cross_section_area_mm2"},
		{"negative gauge", types.SpecimenGeometry{CrossSectionAreaMM2: 1, GaugeLengthMM: -1}, 10, "specimen.gauge_length_mm"},
		{"nan area", types.SpecimenGeometry{CrossSectionAreaMM2: math.NaN(), GaugeLengthMM: 1}, 10, "specimen.cross_section_area_mm2"},
		{"window", geometry, 1, "processing.rolling_window_points"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mechanics.New(tc.g, tc.window)
			var cfgErr *types.ConfigurationError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tc.field {
				t.Fatalf("expected ConfigurationError on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestProcess_ConstantInput(t *testing.T) {
	e, err := mechanics.New(geometry, 5)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 20; i++ {
		p := e.Process(types.Sample{Timestamp: float64(i)}, 1000, 0.5)
		if p.StressMPa != 100 {
			t.Fatalf("expected stress 100, got %v", p.StressMPa)
		}
		if p.Strain != 0.01 {
			t.Fatalf("expected strain 0.01, got %v", p.Strain)
		}
		switch {
		case i < 4 && p.StiffnessGPa != nil:
			t.Fatalf("point %d: expected nil stiffness before the window fills", i)
		case i >= 4 && (p.StiffnessGPa == nil || *p.StiffnessGPa != 0):
			t.Fatalf("point %d: expected stiffness 0 for a window with no strain spread, got %v", i, p.StiffnessGPa)
		}
	}
}

func TestProcess_LinearRampStiffness(t *testing.T) {
	const window = 25
	e, _ := mechanics.New(geometry, window)

	// 200 GPa: stress = 200000 * strain (MPa).
	for i := 0; i < 400; i++ {
		strain := float64(i) * 1e-5
		disp := strain * geometry.GaugeLengthMM
		force := 200000 * strain * geometry.CrossSectionAreaMM2
		p := e.Process(types.Sample{Timestamp: float64(i) / 1000}, force, disp)

		if i < window-1 {
			if p.StiffnessGPa != nil {
				t.Fatalf("point %d: stiffness before window filled", i)
			}
			continue
		}
		if p.StiffnessGPa == nil {
			t.Fatalf("point %d: expected stiffness", i)
		}
		if math.Abs(*p.StiffnessGPa-200) > 1e-6 {
			t.Fatalf("point %d: expected 200 GPa, got %v", i, *p.StiffnessGPa)
		}
	}
}

func TestProcess_ResetClearsWindow(t *testing.T) {
	e, _ := mechanics.New(geometry, 3)
	for i := 0; i < 3; i++ {
		e.Process(types.Sample{}, float64(i)*10, float64(i))
	}
	e.Reset()
	if p := e.Process(types.Sample{}, 10, 1); p.StiffnessGPa != nil {
		t.Fatalf("expected nil stiffness after reset")
	}
}

func TestRollingOLS_MatchesDirectFitAfterManyEvictions(t *testing.T) {
	const window = 50
	ols := mechanics.NewRollingOLS(window)
	xs := make([]float64, 0, 5000)
	ys := make([]float64, 0, 5000)
	for i := 0; i < 5000; i++ {
		x := float64(i) * 1e-4
		y := 3*x + 1e3 + math.Sin(float64(i))
		xs = append(xs, x)
		ys = append(ys, y)
		ols.Add(x, y)
	}

	fit, ok := ols.Fit()
	if !ok {
		t.Fatalf("expected fit")
	}

	wx, wy := xs[len(xs)-window:], ys[len(ys)-window:]
	var mx, my float64
	for i := range wx {
		mx += wx[i]
		my += wy[i]
	}
	mx /= window
	my /= window
	var sxx, sxy float64
	for i := range wx {
		sxx += (wx[i] - mx) * (wx[i] - mx)
		sxy += (wx[i] - mx) * (wy[i] - my)
	}
	want := sxy / sxx
	if math.Abs(fit.Slope-want) > 1e-6*math.Abs(want) {
		t.Fatalf("expected slope %v, got %v", want, fit.Slope)
	}
	if fit.N != window {
		t.Fatalf("expected N=%d, got %d", window, fit.N)
	}
}

func TestRollingOLS_Unbounded(t *testing.T) {
	ols := mechanics.NewRollingOLS(0)
	if _, ok := ols.Fit(); ok {
		t.Fatalf("expected no fit on empty window")
	}
	for i := 0; i < 10; i++ {
		ols.Add(float64(i), 2*float64(i)+1)
	}
	fit, ok := ols.Fit()
	if !ok || math.Abs(fit.Slope-2) > 1e-12 || math.Abs(fit.Intercept-1) > 1e-12 {
		t.Fatalf("unexpected fit %+v", fit)
	}
	if math.Abs(fit.RSquared-1) > 1e-12 || fit.ResidualStd > 1e-6 {
		t.Fatalf("expected perfect fit, got %+v", fit)
	}
	if ols.Full() {
		t.Fatalf("unbounded window is never full")
	}
}
