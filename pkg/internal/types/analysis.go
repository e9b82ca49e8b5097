package types

// AnalysisStatus reports whether region detection ran at all.
type AnalysisStatus string

const (
	AnalysisComplete         AnalysisStatus = "complete"
	AnalysisInsufficientData AnalysisStatus = "insufficient_data"
)

// Region names a mechanical region of the stress-strain curve.
type Region string

const (
	RegionElastic  Region = "elastic"
	RegionYield    Region = "yield"
	RegionUltimate Region = "ultimate"
	RegionFracture Region = "fracture"
	RegionPlastic  Region = "plastic"
)

// Regions lists every region in detection order.
var Regions = []Region{RegionElastic, RegionYield, RegionUltimate, RegionFracture, RegionPlastic}

// RegionOutcome tags the result of detecting one region. Not detecting a region is
// a valid outcome, not an error.
type RegionOutcome string

const (
	OutcomeDetected         RegionOutcome = "detected"
	OutcomeNotDetected      RegionOutcome = "not_detected"
	OutcomeInsufficientData RegionOutcome = "insufficient_data"
)

type ElasticRegion struct {
	StartIdx   int     `json:"start_idx"`
	EndIdx     int     `json:"end_idx"`
	ModulusGPa float64 `json:"slope_gpa"`
	Intercept  float64 `json:"intercept_mpa"`
	RSquared   float64 `json:"r_squared"`
}

type YieldPoint struct {
	Index     int     `json:"index"`
	StressMPa float64 `json:"stress_mpa"`
	Strain    float64 `json:"strain"`
}

type UltimatePoint struct {
	Index     int     `json:"index"`
	StressMPa float64 `json:"stress_mpa"`
	Strain    float64 `json:"strain"`
}

type FracturePoint struct {
	Index     int     `json:"index"`
	StressMPa float64 `json:"stress_mpa"`
	Strain    float64 `json:"strain"`
}

// PlasticRegion spans yield to ultimate.
type PlasticRegion struct {
	StartIdx    int     `json:"start_idx"`
	EndIdx      int     `json:"end_idx"`
	StrainRange float64 `json:"strain_range"`
}

// SignalDiagnostics summarises the noise content of the raw voltage channels.
type SignalDiagnostics struct {
	SampleRateHz   float64 `json:"sample_rate_hz"`
	Ch0DominantHz  float64 `json:"ch0_dominant_hz"`
	Ch1DominantHz  float64 `json:"ch1_dominant_hz"`
	Ch0SNRdB       float64 `json:"ch0_snr_db"`
	Ch1SNRdB       float64 `json:"ch1_snr_db"`
	Ch0ResidualRMS float64 `json:"ch0_residual_rms"`
	Ch1ResidualRMS float64 `json:"ch1_residual_rms"`
}

// AnalysisResult is the output of region analysis over a closed session.
// When all are present: Elastic.EndIdx < Yield.Index < Ultimate.Index <= Fracture.Index.
type AnalysisResult struct {
	Status      AnalysisStatus           `json:"status"`
	Points      int                      `json:"points"`
	Elastic     *ElasticRegion           `json:"elastic,omitempty"`
	Yield       *YieldPoint              `json:"yield,omitempty"`
	Ultimate    *UltimatePoint           `json:"ultimate,omitempty"`
	Fracture    *FracturePoint           `json:"fracture,omitempty"`
	Plastic     *PlasticRegion           `json:"plastic,omitempty"`
	Diagnostics *SignalDiagnostics       `json:"diagnostics,omitempty"`
	Outcomes    map[Region]RegionOutcome `json:"outcomes"`
}

// Outcome returns the tagged outcome for r, defaulting to not_detected.
func (a AnalysisResult) Outcome(r Region) RegionOutcome {
	if o, ok := a.Outcomes[r]; ok {
		return o
	}
	return OutcomeNotDetected
}
