// Package analyzer performs offline region analysis over a closed session: elastic
// modulus, 0.2% offset yield, ultimate tensile strength and fracture. Undetected
// regions are reported as tagged outcomes, never as errors.
package analyzer

import (
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

const (
	DefaultMinPoints             = 50
	DefaultR2Threshold           = 0.98
	DefaultYieldOffset           = 0.002
	DefaultFractureDropFraction  = 0.5
	DefaultFractureWindow        = 10
	DefaultElasticMinPoints      = 10
	DefaultElasticOriginFraction = 0.05
	DefaultMaxStartCandidates    = 25
	DefaultDeviationRun          = 3
	DefaultDeviationSigma        = 4.0
)

// Analyzer holds the tuning of the region detectors. It is immutable after New and
// safe to share between goroutines.
type Analyzer struct {
	componentMetadata types.ComponentMetadata

	minPoints            int
	r2Threshold          float64
	yieldOffset          float64
	fractureDropFraction float64
	fractureWindow       int
	elasticMinPoints     int
	originTolerance      float64
	maxStartCandidates   int
	deviationRun         int
	deviationSigma       float64
	sampleRate           float64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New returns an Analyzer with defaults overridden by options.
func New(options ...types.Option[*Analyzer]) *Analyzer {
	a := &Analyzer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ANALYZER",
		},
		minPoints:            DefaultMinPoints,
		r2Threshold:          DefaultR2Threshold,
		yieldOffset:          DefaultYieldOffset,
		fractureDropFraction: DefaultFractureDropFraction,
		fractureWindow:       DefaultFractureWindow,
		elasticMinPoints:     DefaultElasticMinPoints,
		originTolerance:      DefaultElasticOriginFraction,
		maxStartCandidates:   DefaultMaxStartCandidates,
		deviationRun:         DefaultDeviationRun,
		deviationSigma:       DefaultDeviationSigma,
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Analyze runs every detector over points, which must be in acquisition order.
func (a *Analyzer) Analyze(points []types.ProcessedPoint) types.AnalysisResult {
	n := len(points)
	res := types.AnalysisResult{
		Points:   n,
		Outcomes: make(map[types.Region]types.RegionOutcome, len(types.Regions)),
	}

	if n < a.minPoints {
		res.Status = types.AnalysisInsufficientData
		for _, r := range types.Regions {
			res.Outcomes[r] = types.OutcomeInsufficientData
		}
		a.NotifyLoggers(types.WarnLevel, "Analyze: insufficient data",
			"component", a.componentMetadata,
			"event", "Analyze",
			"result", "INSUFFICIENT_DATA",
			"points", n,
			"min_points", a.minPoints,
			"error", types.ErrInsufficientData,
		)
		return res
	}
	res.Status = types.AnalysisComplete

	strain := utils.Project(points, func(p types.ProcessedPoint) float64 { return p.Strain })
	stress := utils.Project(points, func(p types.ProcessedPoint) float64 { return p.StressMPa })

	res.Elastic = a.detectElastic(strain, stress)
	if res.Elastic != nil {
		res.Yield = a.detectYield(strain, stress, res.Elastic)
	}
	res.Ultimate = detectUltimate(strain, stress, res.Yield)
	res.Fracture = a.detectFracture(strain, stress, res.Ultimate)
	res.Plastic = detectPlastic(strain, res.Yield, res.Ultimate)

	res.Outcomes[types.RegionElastic] = outcome(res.Elastic != nil)
	res.Outcomes[types.RegionYield] = outcome(res.Yield != nil)
	res.Outcomes[types.RegionUltimate] = outcome(res.Ultimate != nil)
	res.Outcomes[types.RegionFracture] = outcome(res.Fracture != nil)
	res.Outcomes[types.RegionPlastic] = outcome(res.Plastic != nil)

	if a.sampleRate > 0 {
		diag, err := Diagnose(points, a.sampleRate)
		if err != nil {
			a.NotifyLoggers(types.DebugLevel, "Analyze: diagnostics skipped",
				"component", a.componentMetadata, "event", "Diagnose", "error", err)
		} else {
			res.Diagnostics = diag
		}
	}

	a.NotifyLoggers(types.InfoLevel, "Analyze: complete",
		"component", a.componentMetadata,
		"event", "Analyze",
		"result", "SUCCESS",
		"points", n,
		"elastic", string(res.Outcome(types.RegionElastic)),
		"yield", string(res.Outcome(types.RegionYield)),
		"fracture", string(res.Outcome(types.RegionFracture)),
	)
	return res
}

func outcome(detected bool) types.RegionOutcome {
	if detected {
		return types.OutcomeDetected
	}
	return types.OutcomeNotDetected
}

func (a *Analyzer) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// MinPoints is the shortest session the analyzer will run detectors on.
func (a *Analyzer) MinPoints() int { return a.minPoints }
