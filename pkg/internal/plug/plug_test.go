package plug_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/plug"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func testCalibrator(t *testing.T) *calibrator.Calibrator {
	t.Helper()
	cal, err := calibrator.New(types.CalibrationParams{
		Ch0: types.ChannelCalibration{Slope: 1000, Offset: 0, Unit: "N"},
		Ch1: types.ChannelCalibration{Slope: 10, Offset: 0, Unit: "mm"},
	})
	if err != nil {
		t.Fatalf("calibrator.New() error: %v", err)
	}
	return cal
}

var testGeometry = types.SpecimenGeometry{CrossSectionAreaMM2: 10, GaugeLengthMM: 50, Material: "steel"}

func TestProfile_StressAt(t *testing.T) {
	p := plug.DefaultProfile()

	cases := []struct {
		strain float64
		want   float64
	}{
		{-0.001, 0},
		{0.001, 200},
		{0.002, 400},
		{0.01, 400},
		{0.10, 450},
		{0.12, 416.25},
		{0.2, 0},
	}
	for _, c := range cases {
		if got := p.StressAt(c.strain); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("StressAt(%v): expected %v, got %v", c.strain, c.want, got)
		}
	}
}

func TestSyntheticSource_PollFollowsProfile(t *testing.T) {
	cal := testCalibrator(t)
	src, err := plug.NewSyntheticSource(cal, testGeometry)
	if err != nil {
		t.Fatalf("NewSyntheticSource() error: %v", err)
	}

	batch, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if len(batch) != plug.DefaultBatchSize {
		t.Fatalf("expected %d samples, got %d", plug.DefaultBatchSize, len(batch))
	}

	profile := src.Profile()
	for i, s := range batch {
		wantT := float64(i) / plug.DefaultSampleRateHz
		if math.Abs(s.Timestamp-wantT) > 1e-12 {
			t.Fatalf("sample %d: expected t=%v, got %v", i, wantT, s.Timestamp)
		}
		force, disp := cal.Convert(s)
		strain := profile.StrainAt(s.Timestamp)
		if math.Abs(force-profile.StressAt(strain)*testGeometry.CrossSectionAreaMM2) > 1e-6 {
			t.Fatalf("sample %d: unexpected force %v", i, force)
		}
		if math.Abs(disp-strain*testGeometry.GaugeLengthMM) > 1e-9 {
			t.Fatalf("sample %d: unexpected displacement %v", i, disp)
		}
	}

	next, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if next[0].Timestamp <= batch[len(batch)-1].Timestamp {
		t.Fatalf("expected timestamps to continue across polls")
	}
	if src.Emitted() != uint64(2*plug.DefaultBatchSize) {
		t.Fatalf("expected %d emitted, got %d", 2*plug.DefaultBatchSize, src.Emitted())
	}

	src.Reset()
	again, _ := src.Poll(context.Background())
	if again[0].Timestamp != 0 {
		t.Fatalf("expected Reset to rewind time, got %v", again[0].Timestamp)
	}
}

func TestSyntheticSource_NoiseIsSeeded(t *testing.T) {
	cal := testCalibrator(t)
	a, _ := plug.NewSyntheticSource(cal, testGeometry, plug.WithNoise(0.01, 42), plug.WithBatchSize(20))
	b, _ := plug.NewSyntheticSource(cal, testGeometry, plug.WithNoise(0.01, 42), plug.WithBatchSize(20))

	ba, _ := a.Poll(context.Background())
	bb, _ := b.Poll(context.Background())
	for i := range ba {
		if ba[i] != bb[i] {
			t.Fatalf("sample %d differs between equally seeded sources", i)
		}
	}

	clean, _ := plug.NewSyntheticSource(cal, testGeometry, plug.WithBatchSize(20))
	bc, _ := clean.Poll(context.Background())
	same := true
	for i := range ba {
		if ba[i].Ch0Voltage != bc[i].Ch0Voltage {
			same = false
		}
	}
	if same {
		t.Fatalf("expected noise to perturb the voltages")
	}
}

func TestSyntheticSource_ConfigurationErrors(t *testing.T) {
	cal := testCalibrator(t)
	cases := []struct {
		name  string
		geom  types.SpecimenGeometry
		opts  []types.Option[*plug.SyntheticSource]
		field string
	}{
		{"rate", testGeometry, []types.Option[*plug.SyntheticSource]{plug.WithSampleRate(0)}, "acquisition.sample_rate_hz"},
		{"batch", testGeometry, []types.Option[*plug.SyntheticSource]{plug.WithBatchSize(0)}, "acquisition.batch_size"},
		{"area", types.SpecimenGeometry{GaugeLengthMM: 50}, nil, "specimen.cross_section_area_mm2"},
		{"gauge", types.SpecimenGeometry{CrossSectionAreaMM2: 10}, nil, "specimen.gauge_length_mm"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := plug.NewSyntheticSource(cal, c.geom, c.opts...)
			var cfgErr *types.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != c.field {
				t.Fatalf("expected field %q, got %q", c.field, cfgErr.Field)
			}
		})
	}

	if _, err := plug.NewSyntheticSource(nil, testGeometry); !errors.Is(err, types.ErrConfiguration) {
		t.Fatalf("expected configuration error for nil calibrator, got %v", err)
	}
}

func TestSyntheticSource_PollHonoursContext(t *testing.T) {
	src, _ := plug.NewSyntheticSource(testCalibrator(t), testGeometry)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Poll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFuncSource(t *testing.T) {
	want := []types.Sample{{Timestamp: 1}}
	src := plug.FuncSource(func(context.Context) ([]types.Sample, error) { return want, nil })

	got, err := src.Poll(context.Background())
	if err != nil || len(got) != 1 || got[0].Timestamp != 1 {
		t.Fatalf("unexpected poll result: %v %v", got, err)
	}
}
