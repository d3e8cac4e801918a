package indicators

import (
	"math"

	"github.com/montanaflynn/stats"
)

type CorrelationResult struct {
	Correlation float64
	Days        int
}

// pearson skips pairs with a NaN on either side. It is NaN when fewer than
// two pairs remain or either side is constant. stats.Pearson reports 0 for a
// constant input, so variance is checked first.
func pearson(x, y []float64) float64 {
	if len(x) != len(y) {
		return math.NaN()
	}

	x, y = dropNaNPairs(x, y)
	if len(x) < 2 {
		return math.NaN()
	}

	varX, err := stats.PopulationVariance(x)
	if err != nil || varX == 0 {
		return math.NaN()
	}

	varY, err := stats.PopulationVariance(y)
	if err != nil || varY == 0 {
		return math.NaN()
	}

	r, err := stats.Pearson(x, y)
	if err != nil {
		return math.NaN()
	}

	return r
}

func dropNaNPairs(x, y []float64) ([]float64, []float64) {
	keptX := make([]float64, 0, len(x))
	keptY := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}

		keptX = append(keptX, x[i])
		keptY = append(keptY, y[i])
	}

	return keptX, keptY
}
