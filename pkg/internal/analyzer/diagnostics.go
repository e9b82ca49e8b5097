package analyzer

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// maxSNRdB caps the reported SNR when the residual has no broadband content.
const maxSNRdB = 200.0

// Diagnose characterises the noise on both raw voltage channels. Each series is
// linearly detrended; the residual's spectrum gives the dominant frequency and the
// ratio of the peak bin to all other bins gives the SNR. Informational only.
func Diagnose(points []types.ProcessedPoint, sampleRate float64) (*types.SignalDiagnostics, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("diagnose: sample rate must be > 0, got %v", sampleRate)
	}
	if len(points) < 4 {
		return nil, fmt.Errorf("diagnose: need at least 4 points, got %d", len(points))
	}

	ch0 := utils.Project(points, func(p types.ProcessedPoint) float64 { return p.Ch0Voltage })
	ch1 := utils.Project(points, func(p types.ProcessedPoint) float64 { return p.Ch1Voltage })

	d := &types.SignalDiagnostics{SampleRateHz: sampleRate}
	d.Ch0DominantHz, d.Ch0SNRdB, d.Ch0ResidualRMS = spectrum(ch0, sampleRate)
	d.Ch1DominantHz, d.Ch1SNRdB, d.Ch1ResidualRMS = spectrum(ch1, sampleRate)
	return d, nil
}

func detrend(series []float64) []float64 {
	xs := make([]float64, len(series))
	floats.Span(xs, 0, float64(len(series)-1))
	alpha, beta := stat.LinearRegression(xs, series, nil, false)

	residual := make([]float64, len(series))
	for i, y := range series {
		residual[i] = y - (alpha + beta*xs[i])
	}
	return residual
}

func spectrum(series []float64, sampleRate float64) (dominantHz, snrDB, rms float64) {
	residual := detrend(series)
	n := len(residual)
	rms = math.Sqrt(floats.Dot(residual, residual) / float64(n))

	coeffs := fft.FFTReal(residual)
	total, peak := 0.0, 0.0
	peakIdx := 0
	for k := 1; k <= n/2; k++ {
		power := cmplx.Abs(coeffs[k]) * cmplx.Abs(coeffs[k])
		total += power
		if power > peak {
			peak = power
			peakIdx = k
		}
	}

	dominantHz = float64(peakIdx) * sampleRate / float64(n)
	noise := total - peak
	switch {
	case peak <= 0:
		snrDB = 0
	case noise <= peak*math.Pow(10, -maxSNRdB/10):
		snrDB = maxSNRdB
	default:
		snrDB = 10 * math.Log10(peak/noise)
	}
	return dominantHz, snrDB, rms
}
