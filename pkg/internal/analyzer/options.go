package analyzer

import "github.com/joeydtaylor/tensilerig/pkg/internal/types"

// WithMinPoints sets the minimum number of points required for analysis.
func WithMinPoints(n int) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if n > 0 {
			a.minPoints = n
		}
	}
}

// WithR2Threshold sets the R² a window must hold to count as linear elastic.
func WithR2Threshold(r2 float64) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if r2 > 0 && r2 <= 1 {
			a.r2Threshold = r2
		}
	}
}

// WithYieldOffset sets the strain offset of the yield line (0.002 for the 0.2% method).
func WithYieldOffset(offset float64) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if offset > 0 {
			a.yieldOffset = offset
		}
	}
}

// WithFractureDropFraction sets the fraction of ultimate stress below which a sustained
// drop counts as fracture.
func WithFractureDropFraction(fraction float64) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if fraction > 0 && fraction < 1 {
			a.fractureDropFraction = fraction
		}
	}
}

// WithFractureWindow sets how many consecutive points must stay below the drop level.
func WithFractureWindow(points int) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if points > 0 {
			a.fractureWindow = points
		}
	}
}

// WithElasticMinPoints sets the shortest window that can qualify as the elastic region.
func WithElasticMinPoints(points int) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if points >= 3 {
			a.elasticMinPoints = points
		}
	}
}

// WithElasticOriginTolerance sets how close to the start of loading an elastic window
// may begin, as a fraction of both the strain range and the stress rise from preload
// to peak.
func WithElasticOriginTolerance(fraction float64) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if fraction > 0 && fraction <= 1 {
			a.originTolerance = fraction
		}
	}
}

// WithSampleRate enables signal diagnostics at the given acquisition rate.
func WithSampleRate(hz float64) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if hz > 0 {
			a.sampleRate = hz
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		a.ConnectLogger(loggers...)
	}
}
