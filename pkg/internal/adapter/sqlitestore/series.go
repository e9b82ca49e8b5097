package sqlitestore

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Stored channels, one blob each. Missing stiffness is stored as NaN.
var channels = []string{"t", "ch0_v", "ch1_v", "force_n", "displacement_mm", "stress_mpa", "strain", "stiffness_gpa"}

func splitPoints(points []types.ProcessedPoint) map[string][]float64 {
	cols := make(map[string][]float64, len(channels))
	for _, ch := range channels {
		cols[ch] = make([]float64, len(points))
	}
	for i, p := range points {
		cols["t"][i] = p.Timestamp
		cols["ch0_v"][i] = p.Ch0Voltage
		cols["ch1_v"][i] = p.Ch1Voltage
		cols["force_n"][i] = p.ForceN
		cols["displacement_mm"][i] = p.DisplacementMM
		cols["stress_mpa"][i] = p.StressMPa
		cols["strain"][i] = p.Strain
		if p.StiffnessGPa != nil {
			cols["stiffness_gpa"][i] = *p.StiffnessGPa
		} else {
			cols["stiffness_gpa"][i] = math.NaN()
		}
	}
	return cols
}

func joinPoints(cols map[string][]float64, n int) ([]types.ProcessedPoint, error) {
	for _, ch := range channels {
		if len(cols[ch]) != n {
			return nil, fmt.Errorf("sqlitestore: channel %s has %d values, want %d", ch, len(cols[ch]), n)
		}
	}
	points := make([]types.ProcessedPoint, n)
	for i := range points {
		p := types.ProcessedPoint{
			Timestamp:      cols["t"][i],
			Ch0Voltage:     cols["ch0_v"][i],
			Ch1Voltage:     cols["ch1_v"][i],
			ForceN:         cols["force_n"][i],
			DisplacementMM: cols["displacement_mm"][i],
			StressMPa:      cols["stress_mpa"][i],
			Strain:         cols["strain"][i],
		}
		if k := cols["stiffness_gpa"][i]; !math.IsNaN(k) {
			p.StiffnessGPa = &k
		}
		points[i] = p
	}
	return points, nil
}

type regionRow struct {
	region   types.Region
	outcome  types.RegionOutcome
	startIdx *int
	endIdx   *int
	stress   *float64
	strain   *float64
}

// regionRows flattens an analysis into one row per region.
func regionRows(a *types.AnalysisResult) []regionRow {
	if a == nil {
		return nil
	}
	rows := make([]regionRow, 0, len(types.Regions))
	for _, r := range types.Regions {
		row := regionRow{region: r, outcome: a.Outcome(r)}
		switch r {
		case types.RegionElastic:
			if e := a.Elastic; e != nil {
				row.startIdx, row.endIdx = intPtr(e.StartIdx), intPtr(e.EndIdx)
			}
		case types.RegionYield:
			if y := a.Yield; y != nil {
				row.startIdx, row.stress, row.strain = intPtr(y.Index), floatPtr(y.StressMPa), floatPtr(y.Strain)
			}
		case types.RegionUltimate:
			if u := a.Ultimate; u != nil {
				row.startIdx, row.stress, row.strain = intPtr(u.Index), floatPtr(u.StressMPa), floatPtr(u.Strain)
			}
		case types.RegionFracture:
			if f := a.Fracture; f != nil {
				row.startIdx, row.stress, row.strain = intPtr(f.Index), floatPtr(f.StressMPa), floatPtr(f.Strain)
			}
		case types.RegionPlastic:
			if p := a.Plastic; p != nil {
				row.startIdx, row.endIdx, row.strain = intPtr(p.StartIdx), intPtr(p.EndIdx), floatPtr(p.StrainRange)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
