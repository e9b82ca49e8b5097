package analyzer

import (
	"math"

	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// residualFloor bounds the deviation test from below, relative to the stress span,
// so noiseless data still has a finite tolerance.
const residualFloor = 1e-9

type elasticCandidate struct {
	start, end int
	r2         float64
}

// detectElastic grows a least-squares window from each start at the beginning of
// loading and keeps the longest window whose fit meets the R² threshold. Ties go to
// the higher R².
func (a *Analyzer) detectElastic(strain, stress []float64) *types.ElasticRegion {
	n := len(strain)
	minStrain, maxStrain := floats.Min(strain), floats.Max(strain)
	strainSpan := maxStrain - minStrain
	stressSpan := floats.Max(stress) - floats.Min(stress)
	if !(strainSpan > 0) || !(stressSpan > 0) {
		return nil
	}

	// Loading starts at the lowest stress before the peak. A start must sit in the
	// leading strain band and below the stress band above that preload level.
	peak := floats.MaxIdx(stress)
	preload := floats.Min(stress[:peak+1])
	strainLimit := minStrain + a.originTolerance*strainSpan
	stressLimit := preload + a.originTolerance*(stress[peak]-preload)

	starts := a.startCandidates(strain[:peak+1], stress[:peak+1], strainLimit, stressLimit)
	floor := residualFloor * stressSpan

	var best *elasticCandidate
	for _, s := range starts {
		if n-s < a.elasticMinPoints || !a.risesFrom(strain, stress, s) {
			continue
		}
		c, ok := a.growWindow(strain, stress, s, floor)
		if !ok {
			continue
		}
		if best == nil || c.end-c.start > best.end-best.start ||
			(c.end-c.start == best.end-best.start && c.r2 > best.r2) {
			cc := c
			best = &cc
		}
	}
	if best == nil {
		return nil
	}

	xs := strain[best.start : best.end+1]
	ys := stress[best.start : best.end+1]
	if !(floats.Max(xs) > floats.Min(xs)) {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if !(beta > 0) {
		return nil
	}
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	return &types.ElasticRegion{
		StartIdx:   best.start,
		EndIdx:     best.end,
		ModulusGPa: beta / mechanics.MPaPerGPa,
		Intercept:  alpha,
		RSquared:   r2,
	}
}

// startCandidates returns the indices of the leading run of points whose strain and
// stress are both within their limits, thinned to at most maxStartCandidates evenly
// spaced entries.
func (a *Analyzer) startCandidates(strain, stress []float64, strainLimit, stressLimit float64) []int {
	var idx []int
	for i := range strain {
		if strain[i] > strainLimit || stress[i] > stressLimit {
			if len(idx) > 0 {
				break
			}
			continue
		}
		idx = append(idx, i)
	}

	if len(idx) <= a.maxStartCandidates {
		return idx
	}
	out := make([]int, a.maxStartCandidates)
	for k := range out {
		out[k] = idx[k*(len(idx)-1)/(a.maxStartCandidates-1)]
	}
	return out
}

// risesFrom reports whether stress climbs over the first elasticMinPoints points from
// start. A flat toe has no elastic response to measure.
func (a *Analyzer) risesFrom(strain, stress []float64, start int) bool {
	end := start + a.elasticMinPoints
	xs, ys := strain[start:end], stress[start:end]
	if !(floats.Max(xs) > floats.Min(xs)) {
		return false
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta > 0
}

// growWindow extends a window from start one point at a time and returns the longest
// end whose fit meets the R² threshold. Short windows that miss the threshold do not
// reject the start: noise dominates a few points. Once a window qualifies, a run of
// deviating points ends the scan before the run.
func (a *Analyzer) growWindow(strain, stress []float64, start int, floor float64) (elasticCandidate, bool) {
	n := len(strain)
	ols := mechanics.NewRollingOLS(0)

	var fit mechanics.Fit
	qualified := false
	best := elasticCandidate{start: start, end: -1}
	run, runSign := 0, 0

	for j := start; j < n; j++ {
		if qualified {
			sigma := math.Max(fit.ResidualStd, floor)
			residual := stress[j] - (fit.Slope*strain[j] + fit.Intercept)
			if math.Abs(residual) > a.deviationSigma*sigma {
				sign := 1
				if residual < 0 {
					sign = -1
				}
				if run > 0 && sign == runSign {
					run++
				} else {
					run, runSign = 1, sign
				}
			} else {
				run = 0
			}
			if run >= a.deviationRun {
				if cut := j - run; cut < best.end {
					best.end = cut
					best.r2 = windowR2(strain[start:cut+1], stress[start:cut+1])
				}
				break
			}
		}

		ols.Add(strain[j], stress[j])
		if j-start+1 < a.elasticMinPoints {
			continue
		}
		next, ok := ols.Fit()
		if !ok {
			continue
		}
		if next.RSquared >= a.r2Threshold && next.Slope > 0 {
			best.end, best.r2 = j, next.RSquared
			qualified = true
		}
		if qualified {
			fit = next
		}
	}

	if best.end < 0 || best.end-start+1 < a.elasticMinPoints {
		return elasticCandidate{}, false
	}
	return best, true
}

func windowR2(xs, ys []float64) float64 {
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return stat.RSquared(xs, ys, nil, alpha, beta)
}
