package builder

import "github.com/joeydtaylor/tensilerig/pkg/internal/analyzer"

type RegionSpans = analyzer.Masks

// RegionMasks flags which of n points fall in the elastic, plastic and necking spans.
func RegionMasks(n int, result AnalysisResult) RegionSpans {
	return analyzer.RegionMasks(n, result)
}

// CountMask returns how many points a mask flags.
func CountMask(mask []bool) int {
	n := 0
	for _, on := range mask {
		if on {
			n++
		}
	}
	return n
}
