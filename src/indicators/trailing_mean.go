package indicators

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/market-stats/src/models"
)

// TrailingMean averages Close over the last days rows, or over the whole
// series when it is shorter than days. Blank closes in the window are skipped;
// a window with none left is NaN.
func TrailingMean(ts *models.TimeSeries, days int) (float64, error) {
	if days <= 0 {
		return 0, models.ErrInvalidWindow
	}

	closes, err := ts.Closes()
	if err != nil {
		return 0, err
	}

	if len(closes) == 0 {
		return 0, fmt.Errorf("%w: %s_%s has no rows", models.ErrEmptySeries, ts.Symbol, ts.Interval)
	}

	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}

	valid := make([]float64, 0, len(closes))
	for _, c := range closes {
		if !math.IsNaN(c) {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		return math.NaN(), nil
	}

	mean, err := stats.Mean(valid)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate mean: %w", err)
	}

	return mean, nil
}
