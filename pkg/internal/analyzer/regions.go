package analyzer

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// detectYield applies the offset method: the offset line runs parallel to the elastic
// fit, shifted right by the yield offset. Yield is the first point after the elastic
// region whose stress is at or below that line.
func (a *Analyzer) detectYield(strain, stress []float64, elastic *types.ElasticRegion) *types.YieldPoint {
	slope := elastic.ModulusGPa * mechanics.MPaPerGPa
	for i := elastic.EndIdx + 1; i < len(stress); i++ {
		line := slope*(strain[i]-a.yieldOffset) + elastic.Intercept
		if stress[i] <= line {
			return &types.YieldPoint{Index: i, StressMPa: stress[i], Strain: strain[i]}
		}
	}
	return nil
}

// detectUltimate returns the maximum stress strictly after yield, or over the whole
// series when yield was not detected. Ties resolve to the earliest index. When yield is
// the last point there is nothing after it and ultimate is not detected.
func detectUltimate(strain, stress []float64, yield *types.YieldPoint) *types.UltimatePoint {
	if len(stress) == 0 {
		return nil
	}
	from := 0
	if yield != nil {
		from = yield.Index + 1
		if from >= len(stress) {
			return nil
		}
	}

	best := from
	for i := from + 1; i < len(stress); i++ {
		if stress[i] > stress[best] {
			best = i
		}
	}
	return &types.UltimatePoint{Index: best, StressMPa: stress[best], Strain: strain[best]}
}

// detectFracture finds the first index after ultimate where stress falls below
// fractureDropFraction of the ultimate stress and stays there for fractureWindow
// points. A window cut short by the end of the series must still hold at least
// min(fractureWindow, 2) points, so a dip on the final sample is not a fracture.
func (a *Analyzer) detectFracture(strain, stress []float64, ultimate *types.UltimatePoint) *types.FracturePoint {
	if ultimate == nil || !(ultimate.StressMPa > 0) {
		return nil
	}
	level := a.fractureDropFraction * ultimate.StressMPa
	minRun := a.fractureWindow
	if minRun > 2 {
		minRun = 2
	}

	n := len(stress)
	for i := ultimate.Index + 1; i < n; i++ {
		if stress[i] >= level {
			continue
		}
		end := i + a.fractureWindow
		if end > n {
			end = n
		}
		if end-i < minRun {
			return nil
		}
		sustained := true
		for k := i + 1; k < end; k++ {
			if stress[k] >= level {
				sustained = false
				break
			}
		}
		if sustained {
			return &types.FracturePoint{Index: i, StressMPa: stress[i], Strain: strain[i]}
		}
	}
	return nil
}

func detectPlastic(strain []float64, yield *types.YieldPoint, ultimate *types.UltimatePoint) *types.PlasticRegion {
	if yield == nil || ultimate == nil || ultimate.Index <= yield.Index {
		return nil
	}
	return &types.PlasticRegion{
		StartIdx:    yield.Index,
		EndIdx:      ultimate.Index,
		StrainRange: strain[ultimate.Index] - strain[yield.Index],
	}
}

// Masks flags, per point, membership of the elastic span, the plastic span (yield to
// ultimate) and the necking span (ultimate to fracture, or to the end of the series).
type Masks struct {
	Elastic []bool
	Plastic []bool
	Necking []bool
}

// RegionMasks expands an AnalysisResult into per-point masks over n points.
func RegionMasks(n int, result types.AnalysisResult) Masks {
	m := Masks{
		Elastic: make([]bool, n),
		Plastic: make([]bool, n),
		Necking: make([]bool, n),
	}
	mark := func(mask []bool, from, to int) {
		if from < 0 {
			from = 0
		}
		for i := from; i <= to && i < n; i++ {
			mask[i] = true
		}
	}

	if result.Elastic != nil {
		mark(m.Elastic, result.Elastic.StartIdx, result.Elastic.EndIdx)
	}
	if result.Plastic != nil {
		mark(m.Plastic, result.Plastic.StartIdx, result.Plastic.EndIdx)
	}
	if result.Ultimate != nil && result.Plastic != nil {
		end := n - 1
		if result.Fracture != nil {
			end = result.Fracture.Index
		}
		mark(m.Necking, result.Ultimate.Index+1, end)
	}
	return m
}
