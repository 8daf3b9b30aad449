package engine

import "sort"

func intMin(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

// sumFirst sums the first k values, k is clamped to the slice length
func sumFirst(vals []float64, k int) float64 {
	k = intMin(k, len(vals))
	sum := float64(0)
	for i := 0; i < k; i++ {
		sum += vals[i]
	}
	return sum
}

// sortedCopy returns an ascending copy of vals
func sortedCopy(vals []float64) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)
	sort.Float64s(out)
	return out
}
