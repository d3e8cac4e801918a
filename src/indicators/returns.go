package indicators

import "math"

// PercentChanges returns close[i]/close[i-1] - 1 for every row. The first row,
// and any row whose previous close is zero, is NaN.
func PercentChanges(closes []float64) []float64 {
	changes := make([]float64, len(closes))
	for i := range closes {
		if i == 0 || closes[i-1] == 0 {
			changes[i] = math.NaN()
			continue
		}

		changes[i] = closes[i]/closes[i-1] - 1
	}

	return changes
}
